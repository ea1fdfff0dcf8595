package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/clients"
)

func TestHTTPMiddlewareRecoversPanic(t *testing.T) {
	m := NewErrorAlertingMiddleware("", "test")
	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/command", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWrapMessageHandlerRecoversPanic(t *testing.T) {
	m := NewErrorAlertingMiddleware("", "test")
	wrapped := m.WrapMessageHandler(func(client *clients.Client, message any) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		wrapped(&clients.Client{ID: "cl_x"}, "msg")
	})
}

func TestWrapConnectionHookRecoversPanic(t *testing.T) {
	m := NewErrorAlertingMiddleware("", "test")
	hook := m.WrapConnectionHook(func(client *clients.Client) error {
		panic("boom")
	})

	err := hook(&clients.Client{ID: "cl_x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cl_x")
}

func TestWrapConnectionHookPassesThroughResult(t *testing.T) {
	m := NewErrorAlertingMiddleware("", "test")

	hookErr := errors.New("hook failed")
	hook := m.WrapConnectionHook(func(client *clients.Client) error { return hookErr })
	assert.ErrorIs(t, hook(&clients.Client{ID: "cl_x"}), hookErr)

	ok := m.WrapConnectionHook(func(client *clients.Client) error { return nil })
	assert.NoError(t, ok(&clients.Client{ID: "cl_x"}))
}

func TestAlertOnErrorDeduplicatesWithinCooldown(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	m := NewErrorAlertingMiddleware(server.URL, "test")
	m.alertOnError(errors.New("same failure"))
	m.alertOnError(errors.New("same failure"))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 10*time.Millisecond)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	assert.Len(t, m.lastAlerts, 1)
}
