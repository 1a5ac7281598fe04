// Package llm wraps an OpenAI-compatible chat-completions endpoint with the
// rate limit, per-attempt timeout and retry policy shared by every caller
// of the reasoning model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/metrics"
)

// DefaultTimeout bounds a single attempt when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Config configures the model client.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	RatePerMinute int
	HTTPClient    *http.Client
}

// Client sends chat completions. It is safe for concurrent use; all callers
// sharing a Client share its rate limit.
type Client struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// New builds a Client from cfg.
func New(cfg Config, m *metrics.Metrics, log zerolog.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	limit := rate.Inf
	burst := 1
	if cfg.RatePerMinute > 0 {
		limit = rate.Limit(float64(cfg.RatePerMinute) / 60)
		burst = cfg.RatePerMinute
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		limiter:    rate.NewLimiter(limit, burst),
		metrics:    m,
		log:        logger.Component(log, "llm_client"),
	}
}

// Complete sends req and returns the first choice's content. req.Model is
// filled from the client when empty. Transport failures, 429s and 5xx
// responses are retried up to MaxRetries times.
func (c *Client) Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveModelCall(time.Since(start)) }()

	if req.Model == "" {
		req.Model = c.model
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		content, err := c.attempt(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !Retryable(err) {
			break
		}
		c.log.Debug().Err(err).Int("attempt", attempt+1).Msg("model call failed, retrying")
	}
	return "", lastErr
}

func (c *Client) attempt(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Retryable reports whether a failed call is worth repeating. Client errors
// other than 429 are not.
func Retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return true
}

// StripFences removes a markdown code fence some models wrap JSON in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
