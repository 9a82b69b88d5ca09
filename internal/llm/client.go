package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/codelens-ai/pydebug/domain"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the static configuration for the explanation client,
// constructed once at startup and passed in explicitly.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64

	// Retries is the number of extra attempts for transient transport
	// errors. The contract allows at most one.
	Retries int
}

// Client requests bug explanations from an OpenAI-compatible
// chat-completions endpoint. It is a boundary to an untrusted external
// system: every failure is contained in the returned ExplanationResult
// and never raised to the caller.
type Client struct {
	cfg       Config
	http      *resty.Client
	logger    hclog.Logger
	warnNoKey sync.Once
}

// NewClient creates a new explanation client
func NewClient(cfg Config, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Retries > 1 {
		cfg.Retries = 1
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetLogger(newHclogAdapter(logger))

	return &Client{
		cfg:    cfg,
		http:   client,
		logger: logger,
	}
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.cfg.Model
}

// Explain sends one completion request built from the source and the
// findings. The returned result is always non-nil; check Success.
func (c *Client) Explain(ctx context.Context, source string, findings []domain.Finding, errorMessage string) *domain.ExplanationResult {
	if c.cfg.APIKey == "" {
		c.warnNoKey.Do(func() {
			c.logger.Warn("no API key configured; explanations are disabled")
		})
		return &domain.ExplanationResult{
			Success:      false,
			ModelUsed:    c.cfg.Model,
			ErrorMessage: "no API key configured; set PYDEBUG_API_KEY to enable explanations",
		}
	}

	req := ChatRequest{
		Model:       c.cfg.Model,
		Messages:    []Message{{Role: "user", Content: BuildPrompt(source, findings, errorMessage)}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var chatResp ChatResponse
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&chatResp).
		SetError(&apiErr).
		Post("/chat/completions")

	if err != nil {
		c.logger.Error("explanation request failed", "error", err)
		return c.failure(fmt.Sprintf("request failed: %v", err))
	}

	if resp.IsError() {
		cause := apiErr.Error.Message
		if cause == "" {
			cause = resp.Status()
		}
		c.logger.Error("explanation request rejected", "status", resp.StatusCode(), "cause", cause)
		return c.failure(fmt.Sprintf("request rejected (%d): %s", resp.StatusCode(), cause))
	}

	if len(chatResp.Choices) == 0 {
		return c.failure("empty response from model")
	}

	text := chatResp.Choices[0].Message.Content
	explanation, suggestedFix, tips := ParseSections(text)

	model := chatResp.Model
	if model == "" {
		model = c.cfg.Model
	}

	return &domain.ExplanationResult{
		Success:      true,
		Text:         explanation,
		SuggestedFix: suggestedFix,
		Tips:         tips,
		ModelUsed:    model,
	}
}

func (c *Client) failure(cause string) *domain.ExplanationResult {
	return &domain.ExplanationResult{
		Success:      false,
		ModelUsed:    c.cfg.Model,
		ErrorMessage: cause,
	}
}

// hclogAdapter adapts an hclog.Logger to the resty log.Logger interface
type hclogAdapter struct {
	logger hclog.Logger
}

func newHclogAdapter(logger hclog.Logger) resty.Logger {
	return &hclogAdapter{logger: logger}
}

// Errorf logs a message at error level
func (a *hclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level
func (a *hclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level
func (a *hclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}
