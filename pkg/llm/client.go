package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the model to use.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"
	// MaxTokens caps the length of a tailored table plus cover letter.
	MaxTokens = 4096
)

// Rate limit backoff bounds.
const (
	initialBackoff = 500 * time.Millisecond
	backoffFactor  = 5
	maxBackoff     = 10 * time.Second
)

// ErrRateLimited is returned once backoff is exhausted on HTTP 429.
var ErrRateLimited = errors.New("rate limited: max retries exceeded")

// Client represents a Claude API client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = ClaudeModel
	}
	client = &Client{
		apiKey:     apiKey,
		model:      model,
		endpoint:   ClaudeAPIEndpoint,
		backoff:    initialBackoff,
		maxBackoff: maxBackoff,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Complete sends prompt as a single user message and returns the first text block of the reply.
func (c *Client) Complete(ctx context.Context, prompt string) (text string, err error) {
	claudeReq := ClaudeRequest{
		Model:     c.model,
		MaxTokens: MaxTokens,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	wait := c.backoff
	for {
		var status int
		var respBody []byte
		status, respBody, err = c.send(ctx, reqBody)
		if err != nil {
			return text, err
		}

		if status == http.StatusTooManyRequests {
			if wait > c.maxBackoff {
				err = ErrRateLimited
				return text, err
			}

			err = sleep(ctx, wait)
			if err != nil {
				return text, err
			}
			wait *= backoffFactor
			continue
		}

		text, err = extractText(status, respBody)
		return text, err
	}
}

// send posts one request and returns the status and body.
func (c *Client) send(ctx context.Context, reqBody []byte) (status int, respBody []byte, err error) {
	// Create HTTP request
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return status, respBody, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return status, respBody, err
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return status, respBody, err
	}

	status = resp.StatusCode
	return status, respBody, err
}

// extractText pulls the first text block out of a Messages API response.
func extractText(status int, body []byte) (text string, err error) {
	if status != http.StatusOK {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = string(body)
		}
		err = errors.Errorf("API request failed with status %d: %s", status, message)
		return text, err
	}

	if !gjson.ValidBytes(body) {
		err = errors.Errorf("failed to parse Claude response: %s", string(body))
		return text, err
	}

	block := gjson.GetBytes(body, `content.#(type=="text").text`)
	if !block.Exists() {
		err = errors.New("no content in Claude response")
		return text, err
	}

	text = block.String()
	return text, err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) (err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = errors.Wrap(ctx.Err(), "gave up waiting for rate limit")
	case <-timer.C:
	}
	return err
}
