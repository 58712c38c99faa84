package anchoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/config"
)

// SubmitResponse is a successful pin of a screening report.
type SubmitResponse struct {
	CID string
	Raw string
}

// Client submits screening reports to the external content-addressed
// store and probes its availability.
type Client interface {
	Submit(ctx context.Context, filename string, payload []byte) (*SubmitResponse, error)
	Health(ctx context.Context) error
}

// BlockfrostClient talks to the hosted Blockfrost IPFS gateway.
type BlockfrostClient struct {
	httpClient  *http.Client
	projectID   string
	apiBaseURL  string
	ipfsBaseURL string
	logger      *zap.Logger
}

// NewBlockfrostClient builds a gateway client from explicit configuration.
func NewBlockfrostClient(cfg config.BlockfrostConfig, logger *zap.Logger) *BlockfrostClient {
	return &BlockfrostClient{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		projectID:   cfg.ProjectID,
		apiBaseURL:  cfg.APIBaseURL,
		ipfsBaseURL: cfg.IPFSBaseURL,
		logger:      logger.Named("blockfrost"),
	}
}

type ipfsAddResponse struct {
	IPFSHash string `json:"ipfs_hash"`
	CID      string `json:"cid"`
}

// Submit uploads the payload as a JSON file to the IPFS add endpoint and
// returns the pinned content identifier. 403 maps to ErrUnauthorized and
// transport failures to ErrUnreachable so the workflow can distinguish
// fallback-eligible failures from ordinary upstream errors.
func (c *BlockfrostClient) Submit(ctx context.Context, filename string, payload []byte) (*SubmitResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/json")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ipfsBaseURL+"/ipfs/add", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("project_id", c.projectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, string(raw))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ipfs pinning failed: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed ipfsAddResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed gateway response: %w", err)
	}
	cid := parsed.IPFSHash
	if cid == "" {
		cid = parsed.CID
	}
	if cid == "" {
		return nil, fmt.Errorf("malformed gateway response: no content identifier in %q", string(raw))
	}

	return &SubmitResponse{CID: cid, Raw: string(raw)}, nil
}

// Health probes the Blockfrost API health endpoint.
func (c *BlockfrostClient) Health(ctx context.Context) error {
	if c.projectID == "" {
		return fmt.Errorf("%w: missing project key", ErrUnauthorized)
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(healthCtx, http.MethodGet, c.apiBaseURL+"/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("project_id", c.projectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("blockfrost health: status %d", resp.StatusCode)
	}
	return nil
}
