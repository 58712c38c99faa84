package anchoring

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/config"
	"github.com/visionchain/screening-api/internal/logging"
	"github.com/visionchain/screening-api/internal/repository"
)

// Store is the persistence surface the workflow needs.
type Store interface {
	FindByScreeningID(ctx context.Context, screeningID string) (*repository.Screening, error)
	UpdateAnchorStatus(ctx context.Context, screeningID string, status repository.AnchorStatus, attempts *int, lastError *string) error
	UpdateAnchorFields(ctx context.Context, screeningID string, fields repository.AnchorFields) (bool, error)
	AppendAnchorLog(ctx context.Context, log *repository.AnchorLog) error
}

// Result is the anchor data returned to callers.
type Result struct {
	ScreeningID string `json:"screeningId"`
	PatientID   string `json:"patientId"`
	TxHash      string `json:"txHash"`
	DID         string `json:"did"`
	ReportHash  string `json:"reportHash"`
	CardanoRef  string `json:"cardanoRef"`
	Simulated   bool   `json:"simulated"`
}

// Workflow turns a screening into a content hash, registers it with the
// external store under a bounded retry budget, and records every attempt
// outcome in the audit trail.
type Workflow struct {
	store  Store
	client Client
	logger *zap.Logger

	maxAttempts            int
	backoffUnit            time.Duration
	network                string
	version                string
	allowSimulatedFallback bool

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWorkflow constructs the anchoring workflow. store may be nil when
// persistence is unconfigured; every call then fails with
// ErrStoreUnavailable.
func NewWorkflow(store Store, client Client, cfg config.AnchorConfig, logger *zap.Logger) *Workflow {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	backoff := cfg.BackoffUnit
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Workflow{
		store:                  store,
		client:                 client,
		logger:                 logger.Named("anchoring"),
		maxAttempts:            maxAttempts,
		backoffUnit:            backoff,
		network:                cfg.Network,
		version:                cfg.Version,
		allowSimulatedFallback: cfg.AllowSimulatedFallback,
		sleep:                  sleepContext,
		now:                    time.Now,
		locks:                  make(map[string]*sync.Mutex),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// lockFor serializes anchoring per screening identifier so two concurrent
// requests cannot both pass the already-anchored check.
func (w *Workflow) lockFor(screeningID string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[screeningID]
	if !ok {
		l = &sync.Mutex{}
		w.locks[screeningID] = l
	}
	return l
}

// Anchor registers a screening report with the external store.
//
// Already-anchored screenings short-circuit: the stored anchor data is
// returned unchanged with no new attempt and no new log entry. Otherwise
// the attempt counter is bumped, the report hash is derived from the
// canonical payload, and submission is retried up to the budget with
// linear backoff between attempts. Exhaustion marks the screening failed
// and surfaces an UpstreamError carrying the last submission error.
func (w *Workflow) Anchor(ctx context.Context, screeningID, patientID, riskScore string) (*Result, error) {
	if w.store == nil {
		return nil, ErrStoreUnavailable
	}

	lock := w.lockFor(screeningID)
	lock.Lock()
	defer lock.Unlock()

	screening, err := w.store.FindByScreeningID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, logging.NewOperationError("anchoring.lookup", screeningID, ErrScreeningNotFound)
		}
		return nil, err
	}

	if existing := anchoredResult(screening, patientID); existing != nil {
		return existing, nil
	}

	attempts := screening.AnchorAttempts + 1
	if err := w.store.UpdateAnchorStatus(ctx, screeningID, repository.AnchorPending, &attempts, nil); err != nil {
		return nil, err
	}

	payload := Payload{
		ScreeningID: screeningID,
		PatientID:   patientID,
		RiskScore:   riskScore,
		Timestamp:   w.now().UTC().Format(time.RFC3339),
		Version:     w.version,
		Network:     w.network,
	}
	canonical, err := payload.CanonicalJSON()
	if err != nil {
		return nil, logging.NewOperationError("anchoring.canonicalize", screeningID, err)
	}
	reportHash, err := payload.ReportHash()
	if err != nil {
		return nil, logging.NewOperationError("anchoring.hash", screeningID, err)
	}

	opLogger := logging.WithOperation(w.logger, "anchoring.anchor", screeningID)

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		opLogger.Info("anchor attempt",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", w.maxAttempts))

		cid, raw, simulated, submitErr := w.submit(ctx, canonical, opLogger)
		if submitErr == nil {
			result := &Result{
				ScreeningID: screeningID,
				PatientID:   patientID,
				TxHash:      TxHashFor(cid),
				DID:         DIDFor(w.network, reportHash),
				ReportHash:  reportHash,
				CardanoRef:  cid,
				Simulated:   simulated,
			}

			applied, err := w.store.UpdateAnchorFields(ctx, screeningID, repository.AnchorFields{
				TxHash:     result.TxHash,
				DID:        result.DID,
				ReportHash: result.ReportHash,
				CardanoRef: result.CardanoRef,
				Simulated:  simulated,
			})
			if err != nil {
				return nil, err
			}
			if !applied {
				// A concurrent workflow won the conditional update; its
				// anchor data is authoritative.
				current, err := w.store.FindByScreeningID(ctx, screeningID)
				if err != nil {
					return nil, err
				}
				if existing := anchoredResult(current, patientID); existing != nil {
					return existing, nil
				}
				return result, nil
			}

			if err := w.appendLog(ctx, screening.ID, "anchored", nil, result, raw, simulated); err != nil {
				opLogger.Warn("anchored but audit log write failed", zap.Error(err))
			}
			return result, nil
		}

		lastErr = submitErr
		opLogger.Warn("anchor attempt failed", zap.Int("attempt", attempt), zap.Error(submitErr))
		errText := submitErr.Error()
		if err := w.appendLog(ctx, screening.ID, "failed", &errText, nil, "", false); err != nil {
			opLogger.Warn("failed attempt audit log write failed", zap.Error(err))
		}

		if attempt < w.maxAttempts {
			// Linear backoff: attempt n waits n backoff units.
			if err := w.sleep(ctx, time.Duration(attempt)*w.backoffUnit); err != nil {
				lastErr = err
				break
			}
		}
	}

	errText := lastErr.Error()
	if err := w.store.UpdateAnchorStatus(ctx, screeningID, repository.AnchorFailed, nil, &errText); err != nil {
		opLogger.Error("failed to record terminal failure", zap.Error(err))
	}
	return nil, &UpstreamError{Attempts: w.maxAttempts, Err: lastErr}
}

// Retry reloads the screening and re-runs Anchor with its stored fields.
// Idempotence for already-anchored records lives in Anchor's
// short-circuit, not here.
func (w *Workflow) Retry(ctx context.Context, screeningID string) (*Result, error) {
	if w.store == nil {
		return nil, ErrStoreUnavailable
	}

	screening, err := w.store.FindByScreeningID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, logging.NewOperationError("anchoring.retry_lookup", screeningID, ErrScreeningNotFound)
		}
		return nil, err
	}

	return w.Anchor(ctx, screeningID, screening.PatientID, screening.RiskScoreDisplay())
}

// submit performs one gateway submission, substituting a locally derived
// reference when the gateway is unreachable or denies authorization and
// the fallback policy allows it.
func (w *Workflow) submit(ctx context.Context, canonical []byte, opLogger *zap.Logger) (cid, raw string, simulated bool, err error) {
	resp, err := w.client.Submit(ctx, "screening_report.json", canonical)
	if err == nil {
		return resp.CID, resp.Raw, false, nil
	}

	if w.allowSimulatedFallback && (errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrUnreachable)) {
		opLogger.Warn("gateway unavailable, substituting simulated reference", zap.Error(err))
		return SimulatedCID(canonical), "", true, nil
	}
	return "", "", false, err
}

func (w *Workflow) appendLog(ctx context.Context, screeningUUID, status string, errText *string, result *Result, raw string, simulated bool) error {
	log := &repository.AnchorLog{
		ScreeningUUID: screeningUUID,
		Status:        status,
		ErrorText:     errText,
		Simulated:     simulated,
		AttemptAt:     w.now().UTC(),
	}
	if result != nil {
		body := map[string]interface{}{
			"txHash":     result.TxHash,
			"did":        result.DID,
			"reportHash": result.ReportHash,
			"cardanoRef": result.CardanoRef,
			"simulated":  result.Simulated,
		}
		if raw != "" {
			body["gatewayResponse"] = raw
		}
		encoded, err := json.Marshal(body)
		if err == nil {
			s := string(encoded)
			log.ResponseBody = &s
		}
	}
	return w.store.AppendAnchorLog(ctx, log)
}

// anchoredResult maps an already-anchored screening onto the result shape,
// or nil when the screening has not (fully) anchored. The status is only
// trusted when the transaction reference and report hash are present,
// matching the store invariant.
func anchoredResult(s *repository.Screening, patientID string) *Result {
	if s.AnchorStatus != repository.AnchorAnchored || s.TxHash == nil || s.ReportHash == nil {
		return nil
	}
	result := &Result{
		ScreeningID: s.ScreeningID,
		PatientID:   s.PatientID,
		TxHash:      *s.TxHash,
		ReportHash:  *s.ReportHash,
		Simulated:   s.Simulated,
	}
	if result.PatientID == "" {
		result.PatientID = patientID
	}
	if s.DID != nil {
		result.DID = *s.DID
	}
	if s.CardanoRef != nil {
		result.CardanoRef = *s.CardanoRef
	}
	return result
}
