package repository

import (
	"fmt"
	"time"
)

// AnchorStatus is the ledger-anchoring state of a screening.
type AnchorStatus string

const (
	AnchorPending  AnchorStatus = "pending"
	AnchorAnchored AnchorStatus = "anchored"
	AnchorFailed   AnchorStatus = "failed"
)

// Operator is the clinician or technician who ran a screening.
type Operator struct {
	ID          string    `gorm:"primaryKey;size:64"`
	DisplayName string    `gorm:"column:display_name;size:128"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (Operator) TableName() string {
	return "operators"
}

// Screening is one classified fundus photo and its anchoring state.
// Rows are created once per inference; only the anchoring workflow
// mutates the anchor_* columns afterwards.
type Screening struct {
	ID               string  `gorm:"primaryKey;size:36"`
	ScreeningID      string  `gorm:"column:screening_id;uniqueIndex;size:32"`
	PatientID        string  `gorm:"column:patient_id;size:64"`
	OperatorUserID   string  `gorm:"column:operator_user_id;size:64"`
	OperatorName     string  `gorm:"column:operator_name;size:128"`
	RiskScoreLabel   string  `gorm:"column:risk_score_label;size:32"`
	RiskScoreNumeric int     `gorm:"column:risk_score_numeric"`
	Confidence       float64 `gorm:"column:confidence"`
	Explanation      string  `gorm:"column:explanation;type:text"`

	AnchorStatus    AnchorStatus `gorm:"column:anchor_status;size:16;default:pending"`
	AnchorAttempts  int          `gorm:"column:anchor_attempts;default:0"`
	TxHash          *string      `gorm:"column:tx_hash;size:128"`
	DID             *string      `gorm:"column:did;size:128"`
	ReportHash      *string      `gorm:"column:report_hash;size:64"`
	CardanoRef      *string      `gorm:"column:cardano_ref;size:128"`
	LastAnchorError *string      `gorm:"column:last_anchor_error;type:text"`
	Simulated       bool         `gorm:"column:simulated;default:false"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the default table name.
func (Screening) TableName() string {
	return "screenings"
}

// RiskScoreDisplay renders the combined risk string shown to operators
// and embedded in anchored payloads.
func (s *Screening) RiskScoreDisplay() string {
	return fmt.Sprintf("%s (%d/100)", s.RiskScoreLabel, s.RiskScoreNumeric)
}

// AnchorLog is the append-only audit trail of anchoring attempts.
// Entries are written once and never mutated or deleted.
type AnchorLog struct {
	ID            uint      `gorm:"primaryKey"`
	ScreeningUUID string    `gorm:"column:screening_uuid;index;size:36"`
	Status        string    `gorm:"column:status;size:16"`
	ErrorText     *string   `gorm:"column:error_text;type:text"`
	ResponseBody  *string   `gorm:"column:response_body;type:text"`
	Simulated     bool      `gorm:"column:simulated;default:false"`
	AttemptAt     time.Time `gorm:"column:attempt_at"`
}

// TableName overrides the default table name.
func (AnchorLog) TableName() string {
	return "anchor_logs"
}
