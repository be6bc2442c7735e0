// internal/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"price-scout/internal/common/config"
	chttp "price-scout/internal/common/http"
	"price-scout/internal/common/logger"
)

var (
	ErrRequestFailed = errors.New("LLM_REQUEST_FAILED")
	ErrTimeout       = errors.New("LLM_TIMEOUT")
	ErrEmptyReply    = errors.New("LLM_EMPTY_REPLY")
)

const defaultMaxRetries = 2

// Client talks to an OpenAI-compatible chat completions endpoint. Gemini,
// OpenRouter and local inference servers all expose this shape.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	client     *chttp.Client
	logger     logger.Logger
}

func NewClient(cfg *config.Config, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIs.GenAI.BaseURL, "/"),
		apiKey:     cfg.APIs.GenAI.APIKey,
		model:      cfg.APIs.GenAI.Model,
		maxRetries: defaultMaxRetries,
		client:     chttp.NewClient(config.GetDuration(cfg.APIs.GenAI.Timeout)),
		logger:     log.WithFields(map[string]interface{}{
			"component": "genai",
			"model":     cfg.APIs.GenAI.Model,
		}),
	}
}

// Available reports whether the client has a usable credential. Callers fall
// back to heuristics when false instead of failing the request.
func (c *Client) Available() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// Model returns the configured model identifier for response metadata.
func (c *Client) Model() string {
	if !c.Available() {
		return "heuristic-fallback"
	}
	return c.model
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = chttp.Wrap(client)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a system+user prompt pair and returns the raw text reply.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%w: no API key configured", ErrRequestFailed)
	}

	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, _ := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between retries
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return "", ErrTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrRequestFailed)
	}
	defer resp.Body.Close()

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrRequestFailed, err)
	}

	if apiResponse.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, apiResponse.Error.Message)
	}

	if len(apiResponse.Choices) == 0 || apiResponse.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}

	content := apiResponse.Choices[0].Message.Content

	c.logger.Debug("completion received", map[string]interface{}{
		"chars": len(content),
	})

	return content, nil
}

// StripFences removes markdown code fences around a JSON reply. Models wrap
// structured output in ```json fences regardless of instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
