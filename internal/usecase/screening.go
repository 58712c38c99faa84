package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/inference"
	"github.com/visionchain/screening-api/internal/logging"
	"github.com/visionchain/screening-api/internal/repository"
	"github.com/visionchain/screening-api/internal/validator"
)

// ErrStoreUnavailable reports that persistence is not configured.
var ErrStoreUnavailable = errors.New("screening store not configured")

// ValidationError rejects an upload that is not a fundus photograph.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "not a retinal fundus image: " + e.Reason
}

// ScreeningStore is the persistence surface the screening flow needs.
type ScreeningStore interface {
	CreateScreening(ctx context.Context, s *repository.Screening) error
	FindByScreeningID(ctx context.Context, screeningID string) (*repository.Screening, error)
	RecentByOperator(ctx context.Context, operatorID string, limit int) ([]*repository.Screening, error)
	FactsByOperator(ctx context.Context, operatorID string) ([]repository.ScreeningFact, error)
	AnchorLogs(ctx context.Context, screeningID string) ([]*repository.AnchorLog, error)
	ClearAll(ctx context.Context) error
}

// Operator identifies who ran a screening.
type Operator struct {
	ID   string
	Name string
}

// ScreeningResult is the outcome of one classified upload.
type ScreeningResult struct {
	ScreeningID       string             `json:"screeningId"`
	PatientID         string             `json:"patientId"`
	Diagnosis         string             `json:"diagnosis"`
	RiskScore         string             `json:"riskScore"`
	RiskScoreNumeric  int                `json:"riskScoreNumeric"`
	Confidence        float64            `json:"confidence"`
	Explanation       string             `json:"explanation"`
	ClassScores       map[string]float64 `json:"class_probabilities"`
	PredictionIndex   int                `json:"prediction_index"`
	HeatmapAvailable  bool               `json:"heatmap_available"`
	HeatmapFilename   string             `json:"heatmap_filename,omitempty"`
	ValidationMessage string             `json:"validation_message"`
	DBID              string             `json:"dbId,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ScreeningUseCase encapsulates the screening flow: validate, classify,
// persist, cache.
type ScreeningUseCase struct {
	store          ScreeningStore
	cache          Cache
	classifier     inference.Client
	logger         *zap.Logger
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewScreeningUseCase constructs a new use case instance. store may be
// nil when persistence is unconfigured; screenings then classify without
// being recorded.
func NewScreeningUseCase(store ScreeningStore, cache Cache, classifier inference.Client, logger *zap.Logger) *ScreeningUseCase {
	return &ScreeningUseCase{
		store:          store,
		cache:          cache,
		classifier:     classifier,
		logger:         logger.Named("screening_usecase"),
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// Screen validates and classifies one fundus upload, persisting the
// result when a store and operator identity are available.
func (uc *ScreeningUseCase) Screen(ctx context.Context, operator Operator, patientID string, imageBytes []byte) (*ScreeningResult, error) {
	img, err := validator.Decode(imageBytes)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	ok, message := validator.Validate(img)
	if !ok {
		return nil, &ValidationError{Reason: message}
	}

	screeningID := NewScreeningID()
	if patientID == "" {
		patientID = NewPatientID()
	}
	opLogger := logging.WithOperation(uc.logger, "usecase.screen", screeningID)

	result, err := uc.classifier.Classify(ctx, screeningID, imageBytes)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.classify", screeningID, err)
		opLogger.Error("classification failed", zap.Error(wrapped))
		return nil, wrapped
	}

	riskScore := inference.RiskScore(result.Label)
	screening := &ScreeningResult{
		ScreeningID:       screeningID,
		PatientID:         patientID,
		Diagnosis:         result.Label,
		RiskScore:         fmt.Sprintf("%s (%d/100)", result.Label, riskScore),
		RiskScoreNumeric:  riskScore,
		Confidence:        result.Confidence,
		Explanation:       fmt.Sprintf("Analysis indicates %s with %.1f%% confidence", result.Label, result.Confidence),
		ClassScores:       result.ClassScores,
		PredictionIndex:   result.LabelIndex,
		HeatmapAvailable:  result.HeatmapAvailable,
		HeatmapFilename:   result.HeatmapFilename,
		ValidationMessage: message,
		CreatedAt:         time.Now().UTC(),
	}

	if uc.store != nil && operator.ID != "" {
		record := &repository.Screening{
			ScreeningID:      screeningID,
			PatientID:        patientID,
			OperatorUserID:   operator.ID,
			OperatorName:     operator.Name,
			RiskScoreLabel:   result.Label,
			RiskScoreNumeric: riskScore,
			Confidence:       result.Confidence,
			Explanation:      fmt.Sprintf("Diabetic Retinopathy Analysis: %s detected with %.1f%% confidence", result.Label, result.Confidence),
			AnchorStatus:     repository.AnchorPending,
		}
		if err := uc.store.CreateScreening(ctx, record); err != nil {
			wrapped := logging.NewOperationError("usecase.save_screening", screeningID, err)
			opLogger.Error("failed to persist screening", zap.Error(wrapped))
			return nil, wrapped
		}
		screening.DBID = record.ID
	}

	serialized, err := json.Marshal(screening)
	if err != nil {
		opLogger.Error("failed to serialize screening result", zap.Error(err))
		return nil, err
	}
	cacheKey := fmt.Sprintf("screening:%s", screeningID)
	if err := uc.withRedisRetry(ctx, screeningID, "cache.set.screening", func() error {
		return uc.cache.Set(ctx, cacheKey, string(serialized), 5*time.Minute)
	}); err != nil {
		// The record is already durable; a cold cache is acceptable.
		opLogger.Warn("failed to cache screening result", zap.Error(err))
	}

	return screening, nil
}

// AnchorLogs returns the anchoring audit trail for a screening.
func (uc *ScreeningUseCase) AnchorLogs(ctx context.Context, screeningID string) ([]*repository.AnchorLog, error) {
	if uc.store == nil {
		return nil, ErrStoreUnavailable
	}
	return uc.store.AnchorLogs(ctx, screeningID)
}

// ClearScreenings wipes all screening data. Demo reset only.
func (uc *ScreeningUseCase) ClearScreenings(ctx context.Context) error {
	if uc.store == nil {
		return ErrStoreUnavailable
	}
	return uc.store.ClearAll(ctx)
}

func (uc *ScreeningUseCase) withRedisRetry(ctx context.Context, screeningID, operation string, fn func() error) error {
	if uc.retryAttempts <= 1 {
		return logging.NewOperationError(operation, screeningID, fn())
	}

	backoff := uc.initialBackoff
	opLogger := logging.WithOperation(uc.logger, operation, screeningID)
	var err error
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, screeningID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= uc.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("redis operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == uc.retryAttempts-1 {
			opLogger.Error("redis operation failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return logging.NewOperationError(operation, screeningID, err)
		}

		opLogger.Warn("transient redis error", zap.Error(err), zap.Int("attempt", attempt+1))
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
