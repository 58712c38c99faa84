package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/anchoring"
	"github.com/visionchain/screening-api/internal/auth"
	"github.com/visionchain/screening-api/internal/chat"
	"github.com/visionchain/screening-api/internal/config"
	"github.com/visionchain/screening-api/internal/inference"
	"github.com/visionchain/screening-api/internal/usecase"
)

type stubAnchorer struct {
	result     *anchoring.Result
	err        error
	anchors    int
	retries    int
	lastScreen string
}

func (a *stubAnchorer) Anchor(ctx context.Context, screeningID, patientID, riskScore string) (*anchoring.Result, error) {
	a.anchors++
	a.lastScreen = screeningID
	return a.result, a.err
}

func (a *stubAnchorer) Retry(ctx context.Context, screeningID string) (*anchoring.Result, error) {
	a.retries++
	a.lastScreen = screeningID
	return a.result, a.err
}

type stubClassifier struct {
	result *inference.Result
	err    error
}

func (c *stubClassifier) Classify(ctx context.Context, screeningID string, imageBytes []byte) (*inference.Result, error) {
	return c.result, c.err
}

func testRouter(t *testing.T, anchorer Anchorer, jwtSecret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	screenings := usecase.NewScreeningUseCase(nil, noopCache{}, &stubClassifier{
		result: &inference.Result{Label: "Mild", LabelIndex: 1, Confidence: 88},
	}, zap.NewNop())

	router := gin.New()
	RegisterRoutes(router, Dependencies{
		Screenings: screenings,
		Anchorer:   anchorer,
		Assistant:  chat.NewAssistant(config.GroqConfig{}, zap.NewNop()),
		HeatmapDir: t.TempDir(),
	}, auth.JWTMiddleware(jwtSecret, "screening-admin"))
	return router
}

type noopCache struct{}

func (noopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (noopCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("empty")
}

func postJSON(router *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoreOnChainSuccess(t *testing.T) {
	anchorer := &stubAnchorer{result: &anchoring.Result{
		ScreeningID: "SCR-0001",
		PatientID:   "PATIENT-1",
		TxHash:      "cardano-ipfs-QmTest",
		DID:         "did:cardano:preprod:abcdef0123456789",
		ReportHash:  "deadbeef",
		CardanoRef:  "QmTest",
	}}
	router := testRouter(t, anchorer, "")

	rec := postJSON(router, "/store-on-chain", `{"screeningId":"SCR-0001","patientId":"PATIENT-1","riskScore":"Mild (40/100)"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if anchorer.anchors != 1 {
		t.Fatalf("expected 1 anchor call, got %d", anchorer.anchors)
	}

	var got anchoring.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.TxHash != "cardano-ipfs-QmTest" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestStoreOnChainValidation(t *testing.T) {
	anchorer := &stubAnchorer{}
	router := testRouter(t, anchorer, "")

	rec := postJSON(router, "/store-on-chain", `{"screeningId":"SCR-0001"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}
	if anchorer.anchors != 0 {
		t.Fatal("invalid requests must not reach the anchorer")
	}
}

func TestStoreOnChainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("lookup: %w", anchoring.ErrScreeningNotFound), http.StatusNotFound},
		{"store unavailable", anchoring.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"retries exhausted", &anchoring.UpstreamError{Attempts: 3, Err: errors.New("status 500")}, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(t, &stubAnchorer{err: tc.err}, "")
			rec := postJSON(router, "/store-on-chain", `{"screeningId":"SCR-1","patientId":"P-1","riskScore":"Mild (40/100)"}`, nil)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRetryAnchorRequiresToken(t *testing.T) {
	anchorer := &stubAnchorer{result: &anchoring.Result{ScreeningID: "SCR-0001"}}
	router := testRouter(t, anchorer, "test-secret")

	rec := postJSON(router, "/admin/retry-anchor", `{"screeningId":"SCR-0001"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if anchorer.retries != 0 {
		t.Fatal("unauthorized requests must not reach the anchorer")
	}

	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		Audience:  jwt.ClaimStrings{"screening-admin"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec = postJSON(router, "/admin/retry-anchor", `{"screeningId":"SCR-0001"}`, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	if anchorer.retries != 1 || anchorer.lastScreen != "SCR-0001" {
		t.Fatalf("expected retry call, got %+v", anchorer)
	}
}

func TestRetryAnchorRejectsWrongAudience(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		Audience:  jwt.ClaimStrings{"other-service"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := postJSON(router, "/admin/retry-anchor", `{"screeningId":"SCR-0001"}`, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong audience, got %d", rec.Code)
	}
}

func TestClearScreeningsWithoutDatabase(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	rec := postJSON(router, "/admin/clear-screenings", `{}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if cleared, _ := body["cleared"].(bool); cleared {
		t.Fatalf("expected cleared=false without database, got %v", body)
	}
}

func TestChatUnavailableWithoutKey(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	rec := postJSON(router, "/chat", `{"messages":[{"role":"user","content":"hi"}]}`, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDebugAnchorLogsRequiresScreeningID(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/debug/anchor-logs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without screeningId, got %d", rec.Code)
	}
}

func TestClassesEndpoint(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/classes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Classes    []string `json:"classes"`
		NumClasses int      `json:"num_classes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.NumClasses != 5 || len(body.Classes) != 5 {
		t.Fatalf("expected 5 classes, got %+v", body)
	}
}

func TestPredictRejectsNonImagePart(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("hello"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictRequiresFile(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("patientId", "PATIENT-1")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS headers on preflight")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, &stubAnchorer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}
