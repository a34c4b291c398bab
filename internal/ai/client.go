// Package ai talks to the hosted completion service (an OpenRouter-style
// chat-completions endpoint).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrAuth means the credential was rejected; never retried.
	ErrAuth = errors.New("completion service rejected credentials")
	// ErrBadRequest covers non-retryable 4xx responses other than 429.
	ErrBadRequest = errors.New("completion request rejected")
	// ErrTransient is the terminal form of a retryable failure once the
	// retry budget is exhausted.
	ErrTransient = errors.New("completion service unavailable")
	// ErrTimeout means the request deadline expired after retries.
	ErrTimeout = errors.New("completion request timed out")
	// ErrEmptyCompletion means a 2xx response carried no generated text.
	ErrEmptyCompletion = errors.New("completion response contained no text")
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		cfg: cfg,
		// Per-attempt timeout; the overall deadline is the caller's ctx.
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete sends the prompt as a single user message and returns the
// generated text. Transient failures (network errors, 5xx, 429) are retried
// with exponential backoff up to MaxRetries; 401/403 and other 4xx fail
// immediately.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var result string

	operation := func() error {
		text, err := c.completeOnce(ctx, prompt)
		if err != nil {
			if errors.Is(err, ErrAuth) || errors.Is(err, ErrBadRequest) || errors.Is(err, ErrEmptyCompletion) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		switch {
		case errors.Is(err, ErrAuth), errors.Is(err, ErrBadRequest), errors.Is(err, ErrEmptyCompletion):
			return "", err
		case errors.Is(ctx.Err(), context.Canceled):
			// The caller abandoned the request; that is not a timeout.
			return "", ctx.Err()
		case isTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		default:
			return "", fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}
	return result, nil
}

// isTimeout reports whether the final attempt failed on an expired deadline,
// either the per-attempt http.Client timeout or a caller deadline carried by
// the request context.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func newExponentialBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	return b
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.cfg.Model,
		"messages": []ChatMessage{
			{Role: "user", Content: prompt},
		},
		"max_tokens": c.cfg.MaxTokens,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build llm request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network and timeout errors are retryable.
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("llm response status %d: %s", resp.StatusCode, truncateBody(raw))
	case resp.StatusCode >= 400:
		return "", fmt.Errorf("%w: status %d: %s", ErrBadRequest, resp.StatusCode, truncateBody(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse llm json failed: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncateBody(raw []byte) string {
	const max = 512
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
