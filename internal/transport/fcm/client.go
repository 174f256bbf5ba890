// Package fcm sends reminders through the Firebase Cloud Messaging HTTP v1
// API. Authentication is a pre-issued OAuth2 bearer token.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	BaseURL     string
	ProjectID   string
	AccessToken string
	Timeout     time.Duration
	// RequestsPerSecond limits outgoing sends; zero disables the limit.
	RequestsPerSecond float64
	Burst             int
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	limiter    *rate.Limiter
	log        *zap.Logger
}

var _ notification.Transport = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("fcm: project id is required: %w", notification.ErrInvalidInput)
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://fcm.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		endpoint: base + "/v1/projects/" + url.PathEscape(cfg.ProjectID) + "/messages:send",
		token:    cfg.AccessToken,
		limiter:  rate.NewLimiter(limit, burst),
		log:      zap.L().With(zap.String("component", "fcm.client")),
	}, nil
}

func (c *Client) WithLogger(l *zap.Logger) *Client {
	if l == nil {
		return c
	}
	cp := *c
	cp.log = l.With(zap.String("component", "fcm.client"))
	return &cp
}

type sendRequest struct {
	Message message `json:"message"`
}

type message struct {
	Token        string            `json:"token"`
	Notification notificationBlock `json:"notification"`
}

type notificationBlock struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// APIError is a non-2xx answer from FCM.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fcm: %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("fcm: %d: %s", e.StatusCode, e.Message)
}

// Send posts one message. It does not retry.
func (c *Client) Send(ctx context.Context, token, title, body string) error {
	if token == "" {
		return fmt.Errorf("fcm: empty token: %w", notification.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("fcm: rate limit wait: %w", err)
	}

	payload, err := json.Marshal(sendRequest{Message: message{
		Token:        token,
		Notification: notificationBlock{Title: title, Body: body},
	}})
	if err != nil {
		return fmt.Errorf("fcm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("fcm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fcm: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("fcm: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}

	var ok sendResponse
	_ = json.Unmarshal(raw, &ok)
	c.log.Debug("push accepted",
		zap.String("message", ok.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func decodeError(code int, raw []byte) error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error.Message != "" {
		return &APIError{StatusCode: code, Status: er.Error.Status, Message: er.Error.Message}
	}
	return &APIError{StatusCode: code, Message: truncate(raw, 200)}
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
