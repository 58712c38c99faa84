package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/visionchain/screening-api/internal/logging"
)

// ErrNotFound reports a missing screening row.
var ErrNotFound = gorm.ErrRecordNotFound

// AnchorFields carries the ledger references persisted on success.
type AnchorFields struct {
	TxHash     string
	DID        string
	ReportHash string
	CardanoRef string
	Simulated  bool
}

// ScreeningFact is the projection used by the analytics aggregates.
type ScreeningFact struct {
	RiskScoreLabel string
	CreatedAt      time.Time
}

// ScreeningRepository provides persistence APIs for screenings, operators
// and anchor logs.
type ScreeningRepository struct {
	db             *gorm.DB
	logger         *zap.Logger
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewScreeningRepository creates a new repository instance.
func NewScreeningRepository(db *gorm.DB, logger *zap.Logger) *ScreeningRepository {
	return &ScreeningRepository{
		db:             db,
		logger:         logger.Named("screening_repository"),
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// AutoMigrate ensures the schema is available.
func (r *ScreeningRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Operator{}, &Screening{}, &AnchorLog{})
}

// CreateScreening persists a new screening, upserting its operator first
// so the foreign reference always resolves.
func (r *ScreeningRepository) CreateScreening(ctx context.Context, s *Screening) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.AnchorStatus == "" {
		s.AnchorStatus = AnchorPending
	}
	return r.executeWithRetry(ctx, "repository.create_screening", s.ScreeningID, func() error {
		op := Operator{ID: s.OperatorUserID, DisplayName: s.OperatorName}
		if op.DisplayName == "" {
			op.DisplayName = "Unknown Operator"
		}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
		}).Create(&op).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).Create(s).Error
	})
}

// FindByScreeningID retrieves a screening by its human-readable identifier.
func (r *ScreeningRepository) FindByScreeningID(ctx context.Context, screeningID string) (*Screening, error) {
	var s Screening
	err := r.executeWithRetry(ctx, "repository.find_screening", screeningID, func() error {
		return r.db.WithContext(ctx).First(&s, "screening_id = ?", screeningID).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateAnchorStatus moves a screening through the anchoring state machine.
// Attempts and lastError are optional; nil leaves the column untouched.
func (r *ScreeningRepository) UpdateAnchorStatus(ctx context.Context, screeningID string, status AnchorStatus, attempts *int, lastError *string) error {
	updates := map[string]interface{}{"anchor_status": status}
	if attempts != nil {
		updates["anchor_attempts"] = *attempts
	}
	if lastError != nil {
		updates["last_anchor_error"] = *lastError
	}
	return r.executeWithRetry(ctx, "repository.update_anchor_status", screeningID, func() error {
		return r.db.WithContext(ctx).Model(&Screening{}).
			Where("screening_id = ?", screeningID).
			Updates(updates).Error
	})
}

// UpdateAnchorFields records a successful anchor. The update is conditional
// on the row not already being anchored so two concurrent workflows cannot
// both claim success; the returned bool reports whether this call won.
func (r *ScreeningRepository) UpdateAnchorFields(ctx context.Context, screeningID string, fields AnchorFields) (bool, error) {
	var applied bool
	err := r.executeWithRetry(ctx, "repository.update_anchor_fields", screeningID, func() error {
		res := r.db.WithContext(ctx).Model(&Screening{}).
			Where("screening_id = ? AND anchor_status <> ?", screeningID, AnchorAnchored).
			Updates(map[string]interface{}{
				"anchor_status":     AnchorAnchored,
				"tx_hash":           fields.TxHash,
				"did":               fields.DID,
				"report_hash":       fields.ReportHash,
				"cardano_ref":       fields.CardanoRef,
				"simulated":         fields.Simulated,
				"last_anchor_error": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

// AppendAnchorLog writes one audit entry. Entries are write-once.
func (r *ScreeningRepository) AppendAnchorLog(ctx context.Context, log *AnchorLog) error {
	if log.AttemptAt.IsZero() {
		log.AttemptAt = time.Now().UTC()
	}
	return r.executeWithRetry(ctx, "repository.append_anchor_log", log.ScreeningUUID, func() error {
		return r.db.WithContext(ctx).Create(log).Error
	})
}

// AnchorLogs returns the audit trail for a screening, newest first.
func (r *ScreeningRepository) AnchorLogs(ctx context.Context, screeningID string) ([]*AnchorLog, error) {
	s, err := r.FindByScreeningID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	var logs []*AnchorLog
	err = r.executeWithRetry(ctx, "repository.anchor_logs", screeningID, func() error {
		return r.db.WithContext(ctx).
			Where("screening_uuid = ?", s.ID).
			Order("attempt_at DESC").
			Find(&logs).Error
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// RecentByOperator returns the operator's latest screenings.
func (r *ScreeningRepository) RecentByOperator(ctx context.Context, operatorID string, limit int) ([]*Screening, error) {
	var rows []*Screening
	err := r.executeWithRetry(ctx, "repository.recent_by_operator", "", func() error {
		return r.db.WithContext(ctx).
			Where("operator_user_id = ?", operatorID).
			Order("created_at DESC").
			Limit(limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FactsByOperator returns the label/timestamp projection the analytics
// aggregates are computed from.
func (r *ScreeningRepository) FactsByOperator(ctx context.Context, operatorID string) ([]ScreeningFact, error) {
	var facts []ScreeningFact
	err := r.executeWithRetry(ctx, "repository.facts_by_operator", "", func() error {
		return r.db.WithContext(ctx).Model(&Screening{}).
			Select("risk_score_label", "created_at").
			Where("operator_user_id = ?", operatorID).
			Find(&facts).Error
	})
	if err != nil {
		return nil, err
	}
	return facts, nil
}

// ClearAll deletes every screening and anchor log. Demo reset only.
func (r *ScreeningRepository) ClearAll(ctx context.Context) error {
	return r.executeWithRetry(ctx, "repository.clear_all", "", func() error {
		if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&AnchorLog{}).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&Screening{}).Error
	})
}

func (r *ScreeningRepository) executeWithRetry(ctx context.Context, operation, screeningID string, fn func() error) error {
	if r.retryAttempts <= 1 {
		return logging.NewOperationError(operation, screeningID, fn())
	}

	backoff := r.initialBackoff
	opLogger := logging.WithOperation(r.logger, operation, screeningID)
	var err error
	for attempt := 0; attempt < r.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, screeningID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= r.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("database operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !isTransientError(err) || attempt == r.retryAttempts-1 {
			opLogger.Error("database operation failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return logging.NewOperationError(operation, screeningID, err)
		}

		opLogger.Warn("transient database error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, screeningID, err)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return true
	}

	return false
}
