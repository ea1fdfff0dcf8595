package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"jarvis/clients"
	"jarvis/clients/socketio"
)

const alertCooldown = 10 * time.Minute

// ErrorAlertingMiddleware recovers panics at the transport boundaries and
// posts deduplicated alerts to a Slack webhook when one is configured.
type ErrorAlertingMiddleware struct {
	webhookURL  string
	environment string
	httpClient  *http.Client

	mutex      sync.Mutex
	lastAlerts map[string]time.Time
}

func NewErrorAlertingMiddleware(webhookURL, environment string) *ErrorAlertingMiddleware {
	return &ErrorAlertingMiddleware{
		webhookURL:  webhookURL,
		environment: environment,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		lastAlerts:  map[string]time.Time{},
	}
}

// HTTPMiddleware recovers panics from HTTP handlers and returns a 500.
func (m *ErrorAlertingMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic in HTTP handler %s %s: %v", r.Method, r.URL.Path, rec)
				log.Printf("❌ %v", err)
				m.alertOnError(err)
				http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WrapMessageHandler recovers panics from push message handlers.
func (m *ErrorAlertingMiddleware) WrapMessageHandler(handler socketio.MessageHandler) socketio.MessageHandler {
	return func(client *clients.Client, message any) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic in message handler for client %s: %v", client.ID, rec)
				log.Printf("❌ %v", err)
				m.alertOnError(err)
			}
		}()
		handler(client, message)
	}
}

// WrapConnectionHook recovers panics from connection lifecycle hooks and
// alerts on hook errors.
func (m *ErrorAlertingMiddleware) WrapConnectionHook(hook socketio.ConnectionHook) socketio.ConnectionHook {
	return func(client *clients.Client) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic in connection hook for client %s: %v", client.ID, rec)
				log.Printf("❌ %v", err)
				m.alertOnError(err)
			}
		}()
		if err = hook(client); err != nil {
			m.alertOnError(err)
		}
		return err
	}
}

// alertOnError sends at most one Slack alert per distinct error message per
// cooldown window.
func (m *ErrorAlertingMiddleware) alertOnError(err error) {
	if m.webhookURL == "" {
		return
	}

	key := fmt.Sprintf("%x", md5.Sum([]byte(err.Error())))

	m.mutex.Lock()
	if last, ok := m.lastAlerts[key]; ok && time.Since(last) < alertCooldown {
		m.mutex.Unlock()
		return
	}
	m.lastAlerts[key] = time.Now()
	m.mutex.Unlock()

	go func() {
		if sendErr := m.sendSlackAlert(err); sendErr != nil {
			log.Printf("⚠️ Failed to send error alert: %v", sendErr)
		}
	}()
}

func (m *ErrorAlertingMiddleware) sendSlackAlert(alertErr error) error {
	payload := map[string]string{
		"text": fmt.Sprintf("🚨 [%s] jarvis error: %v", m.environment, alertErr),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	resp, err := m.httpClient.Post(m.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}
