package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	report *runner.Report
	err    error
	runs   int
	seen   *runner.Report
}

func (m *mockRunner) Run(context.Context) (*runner.Report, error) {
	m.runs++
	return m.report, m.err
}

func (m *mockRunner) Graph(last *runner.Report) string {
	m.seen = last
	return "graph TD\n"
}

func sampleReport() *runner.Report {
	return &runner.Report{Cases: []runner.CaseResult{
		{Path: []string{"when doing subject"}, Name: "should equal 5", Status: runner.StatusPassed},
		{Path: []string{"when doing subject"}, Name: "should equal 4", Status: runner.StatusFailed, Error: "expected: 4   actual: 5"},
	}}
}

func TestServer_Run(t *testing.T) {
	mock := &mockRunner{report: sampleReport()}
	handler := NewHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/run", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp RunResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.OK)
	assert.Equal(t, 1, resp.Passed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Cases, 2)
	assert.Equal(t, "expected: 4   actual: 5", resp.Cases[1].Error)
	assert.Equal(t, 1, mock.runs)
}

func TestServer_RunError(t *testing.T) {
	handler := NewHandler(&mockRunner{err: errors.New("step outside case")}, nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "step outside case")
}

func TestServer_GraphOverlay(t *testing.T) {
	mock := &mockRunner{report: sampleReport()}
	handler := NewHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph?overlay=last", nil))
	assert.Equal(t, "graph TD\n", w.Body.String())
	assert.Nil(t, mock.seen, "no run yet")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/run", nil))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/graph", nil))
	assert.Nil(t, mock.seen)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/graph?overlay=last", nil))
	assert.Same(t, mock.report, mock.seen)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "chainspec_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	handler := NewHandler(&mockRunner{}, reg, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "chainspec_test_total 1"))

	w = httptest.NewRecorder()
	NewHandler(&mockRunner{}, nil, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Healthz(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&mockRunner{}, nil, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
