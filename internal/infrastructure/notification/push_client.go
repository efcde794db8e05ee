// Package notification delivers push notifications through the
// configured push gateway.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	notificationapp "github.com/dormsync/backend/internal/application/notification"
	"github.com/dormsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const maxResponseSize = 64 * 1024

var _ notificationapp.Pusher = (*HTTPPushClient)(nil)

// HTTPPushClient sends push notifications to an HTTP gateway (Expo,
// FCM proxy, or similar)
type HTTPPushClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPPushClient creates a push client, or nil when no endpoint is
// configured. Callers skip handler registration on nil.
func NewHTTPPushClient(cfg config.NotificationConfig, logger *zap.Logger) *HTTPPushClient {
	if cfg.Endpoint == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPPushClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type pushRequest struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Push delivers one notification to one device token
func (c *HTTPPushClient) Push(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(pushRequest{To: token, Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("push gateway returned %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug("Push delivered", zap.String("title", title))
	return nil
}
