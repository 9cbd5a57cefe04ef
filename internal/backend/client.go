// Package backend is a client of the clinic REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TokenHeader несёт токен сессии пациента
	TokenHeader = "token"
	// RequestIDHeader связывает логи бота и бэкенда
	RequestIDHeader = "X-Request-ID"
)

// APIError is returned when the backend answers success:false or a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ErrorMessage returns the text to show to the user:
// the server-provided message when there is one, otherwise the error text itself.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return err.Error()
}

// envelope - общая часть всех ответов бэкенда
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool { return e.Success }

func (e envelope) message() string { return e.Message }

type response interface {
	ok() bool
	message() string
}

// Client is a thin JSON client; every call is a single request without retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (по умолчанию без таймаута, как у транспорта)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient создает клиент бэкенда
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend url is empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do выполняет запрос и декодирует ответ в out.
// body == nil означает запрос без тела.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out response) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	c.logger.Debug("Backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// бэкенд кладёт message и в ответы с ошибочным статусом
		var env envelope
		_ = json.Unmarshal(raw, &env)

		c.logger.Warn("Backend returned error status",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !out.ok() {
		return &APIError{StatusCode: resp.StatusCode, Message: out.message()}
	}

	return nil
}
