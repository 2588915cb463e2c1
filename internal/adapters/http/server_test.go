package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/twotruths"
	"github.com/aretw0/twotruths/internal/adapters/memory"
	"github.com/aretw0/twotruths/internal/testutils"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...twotruths.Option) *twotruths.Engine {
	t.Helper()
	opts = append([]twotruths.Option{twotruths.WithConfigs(testutils.MeasurementConfig())}, opts...)
	eng, err := twotruths.New(nil, opts...)
	require.NoError(t, err)
	return eng
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodGet, "/info", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "twotruths-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, apiVersion, resp["api_version"])
}

func TestGenerate_Masked(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodPost, "/generate", `{"truths": 2, "lies": 1}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.NotContains(t, rr.Body.String(), `"truth"`)
	var resp maskedBatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Statements, 3)
}

func TestGenerate_Reveal(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodPost, "/generate?reveal=true", `{"truths": 1, "lies": 2, "seed": 7}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var batch domain.Batch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	truths, lies := batch.Counts()
	assert.Equal(t, 1, truths)
	assert.Equal(t, 2, lies)
}

func TestGenerate_Errors(t *testing.T) {
	handler := NewHandler(newEngine(t))

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"malformed body", "/generate", `{`, http.StatusBadRequest},
		{"unknown field", "/generate", `{"truths": 1, "colour": "red"}`, http.StatusBadRequest},
		{"nothing requested", "/generate", `{"truths": 0, "lies": 0}`, http.StatusBadRequest},
		{"negative lies", "/generate", `{"truths": 1, "lies": -1}`, http.StatusBadRequest},
		{"bad reveal", "/generate?reveal=maybe", `{"truths": 1}`, http.StatusBadRequest},
		{"exhaustion", "/generate", `{"truths": 4, "max_retries": 2}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, handler, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGenerate_ValidationField(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodPost, "/generate", `{"truths": 1, "max_retries": -3}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "max_retries", body.Field)
}

func TestRevealBatch(t *testing.T) {
	handler := NewHandler(newEngine(t, twotruths.WithStore(memory.NewStore(time.Minute))))

	rr := do(t, handler, http.MethodPost, "/generate", `{"truths": 1, "lies": 1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var masked maskedBatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &masked))

	rr = do(t, handler, http.MethodGet, "/batches/"+masked.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var batch domain.Batch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	assert.Equal(t, masked.ID, batch.ID)
	require.Len(t, batch.Statements, 2)
	assert.Equal(t, masked.Statements[0].Text, batch.Statements[0].Text)

	rr = do(t, handler, http.MethodGet, "/batches/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRevealBatch_NoStore(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodGet, "/batches/abc", "")
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestListGenerators(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodGet, "/generators", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var gens []twotruths.GeneratorInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &gens))
	assert.Equal(t, []twotruths.GeneratorInfo{{Kind: generator.KindMeasurement, Name: "cubing", Size: 3}}, gens)
}

func TestRateLimit(t *testing.T) {
	handler := NewHandler(newEngine(t), WithRateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, do(t, handler, http.MethodGet, "/generators", "").Code)
	assert.Equal(t, http.StatusOK, do(t, handler, http.MethodGet, "/generators", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, handler, http.MethodGet, "/generators", "").Code)

	// Health checks are never limited.
	assert.Equal(t, http.StatusOK, do(t, handler, http.MethodGet, "/health", "").Code)
}

func TestCORS(t *testing.T) {
	handler := NewHandler(newEngine(t))

	rr := do(t, handler, http.MethodOptions, "/generate", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	handler = NewHandler(newEngine(t), WithoutCORS())
	rr = do(t, handler, http.MethodGet, "/health", "")
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewHandler(newEngine(t), WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("twotruths_batches_total 1\n"))
	})))

	rr := do(t, handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "twotruths_batches_total")
}

func TestOpenAPISpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/generate"))
	assert.NotNil(t, doc.Paths.Find("/batches/{id}"))

	rr := do(t, NewHandler(newEngine(t)), http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "openapi: 3.0.3")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(&domain.ValidationError{Message: "x"}))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(domain.ErrNoArguments))
	assert.Equal(t, http.StatusNotFound, StatusFor(domain.ErrBatchNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(assert.AnError))
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	s.writeJSON(brokenWriter{httptest.NewRecorder()}, http.StatusOK, map[string]string{"status": "ok"})

	assert.Contains(t, buf.String(), "encode response failed")
	assert.Contains(t, buf.String(), "connection reset")
}
