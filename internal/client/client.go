// Package client talks to the remote LR(1) analysis service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
)

const (
	parsePath  = "/api/lr1/parse-string"
	healthPath = "/health"

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Config configures a Client
type Config struct {
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"gt=0"`
	UserAgent string
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost:8000",
		Timeout:   60 * time.Second,
		UserAgent: "lrview",
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return newError(ErrTypeInternal, "invalid client configuration", err)
	}
	return nil
}

// Client performs analysis requests. It never retries.
type Client struct {
	config  *Config
	http    *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a client from config
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, newError(ErrTypeInternal, "invalid base URL", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("client"),
	}, nil
}

// Endpoint returns the configured service base URL
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

type parseRequest struct {
	GrammarText string `json:"grammar_text"`
	InputString string `json:"input_string"`
}

// Analyze submits a grammar and input string and returns the decoded result
func (c *Client) Analyze(ctx context.Context, grammar, input string) (*result.AnalysisResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	payload, err := json.Marshal(parseRequest{GrammarText: grammar, InputString: input})
	if err != nil {
		return nil, c.tag(newError(ErrTypeInternal, "failed to marshal request", err), requestID)
	}

	endpoint := c.baseURL.JoinPath(parsePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, c.tag(newError(ErrTypeInternal, "failed to create request", err), requestID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.log.DebugWithFields("submitting analysis", []logger.Field{
		logger.RequestID(requestID),
		logger.F("endpoint", endpoint.String()),
		logger.F("grammar_bytes", len(grammar)),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		se := c.tag(transportError(err), requestID)
		c.log.WarnWithFields("analysis request failed", []logger.Field{logger.RequestID(requestID), logger.Error(err)})
		return nil, se
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := c.tag(statusError(resp.StatusCode, body), requestID)
		c.log.WarnWithFields("analysis rejected", []logger.Field{
			logger.RequestID(requestID),
			logger.Status(resp.StatusCode),
			logger.F("detail", se.Message),
		})
		return nil, se
	}

	res, err := result.Decode(resp.Body)
	if err != nil {
		return nil, c.tag(newError(ErrTypeDecode, "failed to decode response", err), requestID)
	}

	c.log.InfoWithFields("analysis complete", []logger.Field{
		logger.RequestID(requestID),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	})
	return res, nil
}

// HealthCheck probes the service liveness endpoint
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := c.baseURL.JoinPath(healthPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return newError(ErrTypeInternal, "failed to create health check request", err)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(resp.StatusCode, body)
	}
	return nil
}

func (c *Client) tag(se *ServiceError, requestID string) *ServiceError {
	se.RequestID = requestID
	return se
}

func transportError(err error) *ServiceError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrTypeTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(ErrTypeTimeout, "request timed out", err)
	}
	return newError(ErrTypeNetwork, "request failed", err)
}

func statusError(status int, body []byte) *ServiceError {
	se := newError(ErrTypeService, parseDetail(body), nil)
	se.StatusCode = status
	if se.Message == "" {
		se.Message = fmt.Sprintf("%s (status %d)", GenericFailure, status)
	}
	return se
}
