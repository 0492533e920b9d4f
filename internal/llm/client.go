package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
)

// Client talks to an Ollama-compatible generation backend.
// The selected model is an explicit field: callers that need a different
// model derive a new client with WithModel instead of mutating shared state.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *slog.Logger
}

// Message is a single chat turn for the /api/chat endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewClient creates a client for the backend at baseURL using model.
// httpClient carries the per-request timeout.
func NewClient(baseURL, model string, temperature float64, maxTokens int, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// WithModel returns a copy of the client targeting a different model.
func (c *Client) WithModel(model string) *Client {
	clone := *c
	clone.model = model
	return &clone
}

// Model returns the currently selected model name.
func (c *Client) Model() string {
	return c.model
}

// generateRequest mirrors the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// chatRequest mirrors the Ollama /api/chat request body.
type chatRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  generateOptions `json:"options"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckConnection probes the backend listing endpoint. It returns true only
// on HTTP 200; any transport error or other status is logged and reported
// as false, never raised.
func (c *Client) CheckConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		c.logger.Error("build connection probe", "error", err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend unreachable", "url", c.baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("backend probe returned non-200", "status", resp.StatusCode)
		return false
	}

	c.logger.Debug("backend reachable", "url", c.baseURL)
	return true
}

// ListModels returns the model names the backend advertises.
// Any failure yields an empty slice.
func (c *Client) ListModels(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		c.logger.Error("build model listing request", "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("list models", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("list models returned non-200", "status", resp.StatusCode)
		return nil
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.logger.Error("parse model listing", "error", err)
		return nil
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names
}

// Generate sends a single non-streaming generation request and returns the
// generated text. Each call is one attempt; retrying is the caller's call.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	c.logger.Debug("sending generate request", "model", c.model, "prompt_len", len(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", fmt.Errorf("parse generate response: %w", err)
	}

	c.logger.Debug("generate complete", "response_len", len(genResp.Response))
	return genResp.Response, nil
}

// Chat sends a message-history request to /api/chat and returns the
// assistant reply content.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: generateOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}

	return cr.Message.Content, nil
}

// Stream sends a streaming generation request and returns a pull-based
// sequence of text fragments. The backend answers with newline-delimited
// JSON; lines that fail to decode are skipped rather than aborting the
// stream, and a backend abort simply ends the sequence early. The response
// body is closed when the consumer stops pulling, so abandoning a partial
// stream releases the connection.
func (c *Client) Stream(ctx context.Context, prompt, systemPrompt string) iter.Seq[string] {
	return func(yield func(string) bool) {
		reqBody := generateRequest{
			Model:  c.model,
			Prompt: prompt,
			System: systemPrompt,
			Stream: true,
			Options: generateOptions{
				Temperature: c.temperature,
				NumPredict:  c.maxTokens,
			},
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			c.logger.Error("marshal stream request", "error", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			c.logger.Error("create stream request", "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error("stream request", "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Error("stream returned non-200", "status", resp.StatusCode)
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}

			var frag generateResponse
			if err := json.Unmarshal(line, &frag); err != nil {
				// Malformed fragment: skip, keep the stream alive.
				c.logger.Debug("skipping malformed stream fragment", "error", err)
				continue
			}
			if frag.Response != "" {
				if !yield(frag.Response) {
					return
				}
			}
			if frag.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			// Mid-stream abort: the caller just sees a shorter sequence.
			c.logger.Warn("stream ended early", "error", err)
		}
	}
}
