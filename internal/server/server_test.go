package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/numtrace/internal/config"
)

func newTestServer(t *testing.T, modify ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, m := range modify {
		m(cfg)
	}
	return New(cfg, zap.NewNop())
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// get evaluates a JSONPath query against a response body, unwrapping
// single-element results.
func get(t *testing.T, rec *httptest.ResponseRecorder, path string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	v, err := jsonpath.Get(path, doc)
	require.NoError(t, err, path)
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return arr[0]
	}
	return v
}

func count(t *testing.T, rec *httptest.ResponseRecorder, path string) int {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	v, err := jsonpath.Get(path, doc)
	require.NoError(t, err, path)
	arr, ok := v.([]any)
	require.True(t, ok, "%s is not an array", path)
	return len(arr)
}

func TestEuler(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/calcular_euler", `{"ecuacion": "x + y", "x0": 0, "y0": 1, "h": 0.1, "xn": 0.2}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	assert.Equal(t, 3, count(t, rec, "$.pasos"))
	assert.Equal(t, "improved_euler", get(t, rec, "$.method"))
	assert.Equal(t, 1.0, get(t, rec, "$.pasos[0].paso"))
	assert.Equal(t, 1.11, get(t, rec, "$.pasos[0].y_siguiente"))
	assert.Equal(t, 0.2, get(t, rec, "$.pasos[2].x"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), `{"method":"improved_euler","pasos":[{"paso":1,"x":0,"y":1,"k1":1,"y_pred":1.1,`))
}

func TestRungeKutta(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/calcular_rk4", "/calcular_runge_kutta"} {
		rec := post(t, s, path, `{"funcion": "x + y", "x0": "0", "y0": "1", "h": "0.1", "xn": "0.2"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "rk4", get(t, rec, "$.method"))
		assert.Equal(t, 3, count(t, rec, "$.pasos"))
		assert.Contains(t, rec.Body.String(), `"k4"`)
		assert.NotContains(t, rec.Body.String(), `"y_pred"`)
	}
}

func TestNewton(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/calcular_newton", `{"ecuacion": "x**2 - 4", "x0": 3, "tolerancia": 0.000001, "max_iter": 100}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, get(t, rec, "$.converged"))
	assert.Equal(t, 2.0, get(t, rec, "$.root"))
	assert.Equal(t, "2*x", get(t, rec, "$.derivative"))
	assert.Equal(t, 1.0, get(t, rec, "$.pasos[0].iteracion"))
	assert.Equal(t, 5.0, get(t, rec, `$.pasos[0]["f(x)"]`))
	assert.Equal(t, 6.0, get(t, rec, `$.pasos[0]["f'(x)"]`))
}

func TestNewton_DefaultMaxIter(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Newton.MaxIter = 3 })
	rec := post(t, s, "/calcular_newton", `{"funcion": "x**2 + 1", "x0": 0.5, "tol": 1e-6}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, get(t, rec, "$.converged"))
	assert.Equal(t, 3, count(t, rec, "$.pasos"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"invalid json", "/calcular_euler", "invalid json", http.StatusBadRequest, "bad_request"},
		{"empty body", "/calcular_rk4", "", http.StatusBadRequest, "bad_request"},
		{"missing parameters", "/calcular_euler", `{"ecuacion": "x + y"}`, http.StatusBadRequest, "bad_request"},
		{"missing function", "/calcular_newton", `{"x0": 1, "tol": 1e-6}`, http.StatusBadRequest, "bad_request"},
		{"non numeric", "/calcular_euler", `{"ecuacion": "y", "x0": "a", "y0": 1, "h": 0.1, "xn": 1}`, http.StatusBadRequest, "bad_request"},
		{"fractional max_iter", "/calcular_newton", `{"funcion": "x", "x0": 1, "tol": 1e-6, "max_iter": 2.5}`, http.StatusBadRequest, "bad_request"},
		{"syntax", "/calcular_rk4", `{"funcion": "2x", "x0": 0, "y0": 1, "h": 0.1, "xn": 1}`, http.StatusBadRequest, "syntax"},
		{"variable", "/calcular_newton", `{"funcion": "x*y", "x0": 1, "tol": 1e-6}`, http.StatusBadRequest, "variable"},
		{"zero step", "/calcular_euler", `{"funcion": "y", "x0": 0, "y0": 1, "h": 0, "xn": 1}`, http.StatusBadRequest, "invalid_parameter"},
		{"zero tolerance", "/calcular_newton", `{"funcion": "x", "x0": 1, "tol": 0}`, http.StatusBadRequest, "invalid_parameter"},
		{"derivative syntax", "/get_derivative", `{"funcion": "sin("}`, http.StatusBadRequest, "syntax"},
		{"grid too long", "/calcular_euler", `{"funcion": "y", "x0": 0, "y0": 0, "h": 1e-7, "xn": 0.999}`, http.StatusBadRequest, "bad_request"},
		{"max_iter too large", "/calcular_newton", `{"funcion": "x", "x0": 1, "tol": 1e-6, "max_iter": 1e9}`, http.StatusBadRequest, "bad_request"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.kind, get(t, rec, "$.kind"))
			assert.NotEmpty(t, get(t, rec, "$.error"))
		})
	}
}

func TestEvaluationFailure(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/calcular_euler", `{"funcion": "1/(x - 0.2)", "x0": 0, "y0": 1, "h": 0.1, "xn": 0.5}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "evaluation", get(t, rec, "$.kind"))
	assert.Equal(t, 2.0, get(t, rec, "$.step"))
	assert.InDelta(t, 0.1, get(t, rec, "$.step_x"), 1e-12)
	assert.InDelta(t, 0.2, get(t, rec, "$.x"), 1e-12)
	assert.Equal(t, 1, count(t, rec, "$.pasos"))
	assert.NotContains(t, rec.Body.String(), `"iteration"`)
}

func TestStepLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxSteps = 10 })

	rec := post(t, s, "/calcular_rk4", `{"funcion": "y", "x0": 0, "y0": 1, "h": 0.1, "xn": 0.9}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 10, count(t, rec, "$.pasos"))

	rec = post(t, s, "/calcular_rk4", `{"funcion": "y", "x0": 0, "y0": 1, "h": 0.1, "xn": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, get(t, rec, "$.error"), "limit of 10 steps")

	rec = post(t, s, "/calcular_newton", `{"funcion": "x**2 - 2", "x0": 1, "tol": 1e-6, "max_iter": 10}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = post(t, s, "/calcular_newton", `{"funcion": "x**2 - 2", "x0": 1, "tol": 1e-6, "max_iter": 11}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "bad_request", get(t, rec, "$.kind"))
}

func TestDerivativeZero(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/calcular_newton", `{"funcion": "x**2 - 4", "x0": 0, "tol": 1e-6}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "derivative_zero", get(t, rec, "$.kind"))
	assert.Equal(t, 1.0, get(t, rec, "$.iteration"))
	assert.Equal(t, 0.0, get(t, rec, "$.x"))
}

func TestTimeout(t *testing.T) {
	// A non-positive timeout leaves every request with an expired deadline.
	s := newTestServer(t, func(c *config.Config) { c.Server.Timeout = -time.Second })
	rec := post(t, s, "/calcular_rk4", `{"funcion": "y", "x0": 0, "y0": 1, "h": 0.1, "xn": 1}`)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "timeout", get(t, rec, "$.kind"))
}

func TestGetDerivative(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/get_derivative", `{"funcion": "x**2 - 4"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "x**2 - 4", get(t, rec, "$.original"))
	assert.Equal(t, "2*x", get(t, rec, "$.derivative"))
	assert.Equal(t, "x^{2} - 4", get(t, rec, "$.original_latex"))
	assert.Equal(t, "2 x", get(t, rec, "$.derivative_latex"))
}

func TestPages(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/euler", "/runge_kutta", "/newton"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "Métodos Numéricos")
	assert.Contains(t, rec.Body.String(), "/calcular_newton")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calcular_euler", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthAndMethods(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", get(t, rec, "$.status"))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/methods", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"euler", "newton", "rk4"}, get(t, rec, "$.methods"))
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(config.DefaultConfig(), zap.New(core))

	req := httptest.NewRequest(http.MethodPost, "/calcular_euler", strings.NewReader(`{"funcion": "y"}`))
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])
	assert.Equal(t, "/calcular_euler", fields["path"])

	assert.Equal(t, 1, logs.FilterMessage("request rejected").Len())
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/calcular_rk4", "application/json",
		bytes.NewBufferString(`{"funcion": "y", "x0": 0, "y0": 1, "h": 0.5, "xn": 1}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"pasos"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
