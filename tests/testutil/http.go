package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper with the payload left raw
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

// APIClient sends JSON requests straight into an http.Handler
type APIClient struct {
	t       *testing.T
	handler http.Handler
}

// NewAPIClient creates a client for handler
func NewAPIClient(t *testing.T, handler http.Handler) *APIClient {
	return &APIClient{t: t, handler: handler}
}

// Do marshals body (when non-nil) and serves the request. headers are
// key/value pairs.
func (c *APIClient) Do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the envelope and, when out is non-nil, its data
func Decode(t *testing.T, w *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NotEmpty(t, env.Data, "response has no data: %s", w.Body.String())
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// RequireStatus fails the test with the body when the status differs
func RequireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
