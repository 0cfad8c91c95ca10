package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bmwadforth/articlehub/internal/authservice"
	"github.com/bmwadforth/articlehub/internal/blobstore"
	"github.com/bmwadforth/articlehub/internal/common"
)

const testAuthKey = "test-signing-key-for-handlers"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

// apiResponse mirrors handlers.Response with the payload left undecoded.
type apiResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  any             `json:"error"`
}

func testConfig() *Config {
	cfg := &Config{Port: ":0", Environment: "test", Version: "1.0.0"}
	cfg.Auth = AuthConfig{Key: testAuthKey, Issuer: "articlehub", Audience: "articlehub", LoginRateLimit: 100, LoginRateBurst: 100}
	cfg.Blob = BlobConfig{Backend: "memory", MaxUploadBytes: 1 << 20}
	return cfg
}

func testTokenManager(t *testing.T) *authservice.TokenManager {
	t.Helper()
	tokens, err := authservice.NewTokenManager(testAuthKey, "articlehub", "articlehub")
	require.NoError(t, err)
	return tokens
}

// newBareApplication builds an application without any backing store, for middleware and error tests.
func newBareApplication(t *testing.T) *application {
	cfg := testConfig()
	return &application{
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens:  testTokenManager(t),
		limiter: newIPRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst),
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	if testing.Short() {
		t.Skip("skipping postgres-backed test in short mode")
	}

	db := common.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return newApplication(testConfig(), logger, db, blobstore.NewMemoryStore(), testTokenManager(t), nil), db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, apiResponse) {
	t.Helper()
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(body, &resp), string(body))

	return res.StatusCode, res.Header, resp
}

func (ts *testServer) do(t *testing.T, method, path, token, contentType string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	return res
}

func (ts *testServer) sendJSON(t *testing.T, method, path, token string, payload any) (int, http.Header, apiResponse) {
	t.Helper()

	js, err := json.Marshal(payload)
	require.NoError(t, err)

	return readResponse(t, ts.do(t, method, path, token, "application/json", bytes.NewReader(js)))
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, apiResponse) {
	t.Helper()
	return readResponse(t, ts.do(t, http.MethodGet, path, token, "", nil))
}
