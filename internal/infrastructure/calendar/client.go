// Package calendar mirrors cleaning schedules into an external
// calendar over its REST API.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	facilityapp "github.com/dormsync/backend/internal/application/facility"
	"github.com/dormsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const maxResponseSize = 64 * 1024

var _ facilityapp.CalendarService = (*RESTClient)(nil)

// RESTClient talks to the external calendar service
type RESTClient struct {
	baseURL    string
	calendarID string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRESTClient creates a calendar client, or nil when no base URL is
// configured. A nil client disables calendar sync.
func NewRESTClient(cfg config.CalendarConfig, logger *zap.Logger) *RESTClient {
	if cfg.BaseURL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RESTClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		calendarID: cfg.CalendarID,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type eventPayload struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

type eventResponse struct {
	ID string `json:"id"`
}

// CreateEvent creates a calendar entry and returns its id
func (c *RESTClient) CreateEvent(ctx context.Context, event facilityapp.CalendarEvent) (string, error) {
	url := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, c.calendarID)

	var created eventResponse
	if err := c.do(ctx, http.MethodPost, url, payloadFor(event), &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("calendar returned an event without an id")
	}
	return created.ID, nil
}

// UpdateEvent pushes changed fields to an existing entry
func (c *RESTClient) UpdateEvent(ctx context.Context, eventID string, event facilityapp.CalendarEvent) error {
	url := fmt.Sprintf("%s/calendars/%s/events/%s", c.baseURL, c.calendarID, eventID)
	return c.do(ctx, http.MethodPut, url, payloadFor(event), nil)
}

// DeleteEvent removes an entry
func (c *RESTClient) DeleteEvent(ctx context.Context, eventID string) error {
	url := fmt.Sprintf("%s/calendars/%s/events/%s", c.baseURL, c.calendarID, eventID)
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

func (c *RESTClient) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode calendar payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build calendar request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("calendar returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
			return fmt.Errorf("failed to decode calendar response: %w", err)
		}
	}
	return nil
}

func payloadFor(event facilityapp.CalendarEvent) eventPayload {
	return eventPayload{
		Title: event.Title,
		Date:  event.Date.Format(time.RFC3339),
		Notes: event.Notes,
	}
}
