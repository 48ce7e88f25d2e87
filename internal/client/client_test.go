package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/lrview/internal/result/resulttest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(&Config{BaseURL: server.URL, Timeout: 5 * time.Second, UserAgent: "lrview-test"}, nil)
	require.NoError(t, err)
	return c
}

func TestAnalyzeExpressionGrammar(t *testing.T) {
	var got parseRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/lr1/parse-string", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, "lrview-test", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(resulttest.ExpressionResponse())
	})

	res, err := c.Analyze(context.Background(), resulttest.ExpressionGrammar, resulttest.ExpressionInput)
	require.NoError(t, err)

	assert.Equal(t, resulttest.ExpressionGrammar, got.GrammarText)
	assert.Equal(t, resulttest.ExpressionInput, got.InputString)

	assert.True(t, res.Succeeded)
	assert.True(t, res.Statistics.IsLR1)
	assert.Equal(t, 0, res.ConflictCount())
	require.NotNil(t, res.Table)
	assert.Len(t, res.Table.GrammarRules, 7)
	require.NotNil(t, res.Trace)
	assert.True(t, res.Trace.Accepted)
	assert.Len(t, res.Trace.Steps, 4)
	require.NotNil(t, res.Diagrams)
	assert.NotNil(t, res.Diagrams.NFA)
	assert.NotNil(t, res.Diagrams.DFA)
}

func TestAnalyzeErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", http.StatusBadRequest, `{"detail": "Error al construir el parser"}`, "Error al construir el parser"},
		{"list detail", http.StatusUnprocessableEntity,
			`{"detail": [{"loc": ["body", "grammar_text"], "msg": "field required"}, {"msg": "bad input"}]}`,
			"body.grammar_text: field required; bad input"},
		{"no detail", http.StatusInternalServerError, `oops`, GenericFailure + " (status 500)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := c.Analyze(context.Background(), "S -> a", "a")
			assert.Nil(t, res)
			require.Error(t, err)

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, ErrTypeService, se.Type)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.want, se.UserMessage())
			assert.NotEmpty(t, se.RequestID)
			assert.True(t, IsServiceError(err))
			assert.False(t, IsNetworkError(err))
		})
	}
}

func TestAnalyzeNoRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.Analyze(context.Background(), "S -> a", "a")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAnalyzeUndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": tru`))
	})
	_, err := c.Analyze(context.Background(), "S -> a", "a")
	assert.ErrorIs(t, err, &ServiceError{Type: ErrTypeDecode})
}

func TestAnalyzeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(&Config{BaseURL: url, Timeout: time.Second}, nil)
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), "S -> a", "a")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestHealthCheck(t *testing.T) {
	healthy := true
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	assert.NoError(t, c.HealthCheck(context.Background()))
	healthy = false
	assert.True(t, IsServiceError(c.HealthCheck(context.Background())))
}

func TestConfigValidate(t *testing.T) {
	_, err := New(&Config{BaseURL: "", Timeout: time.Second}, nil)
	assert.Error(t, err)

	_, err = New(&Config{BaseURL: "http://localhost:8000", Timeout: 0}, nil)
	assert.Error(t, err)

	_, err = New(nil, nil)
	assert.NoError(t, err)
}
