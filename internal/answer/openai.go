package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/starford/quizbook/internal/httputil"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAI is a Completer backed by an OpenAI-compatible chat completions API.
type OpenAI struct {
	client     *http.Client
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
}

// OpenAIOptions configure an OpenAI client.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	Endpoint   string // base URL or full chat completions URL
	MaxRetries int
	Client     *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAI creates a chat completions client.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Minute}
	}
	return &OpenAI{
		client:     client,
		apiKey:     opts.APIKey,
		model:      opts.Model,
		endpoint:   chatEndpoint(opts.Endpoint),
		maxRetries: opts.MaxRetries,
	}
}

// chatEndpoint accepts a host, a /v1 base or the full completions URL.
func chatEndpoint(base string) string {
	e := strings.TrimRight(strings.TrimSpace(base), "/")
	switch {
	case e == "":
		return defaultEndpoint
	case strings.HasSuffix(e, "/chat/completions"):
		return e
	case strings.HasSuffix(e, "/v1"):
		return e + "/chat/completions"
	default:
		return e + "/v1/chat/completions"
	}
}

// Complete sends system and prompt as a two-message chat and returns the
// first choice.
func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(o.apiKey) == "" {
		return "", errors.New("openai: api key is required")
	}
	if strings.TrimSpace(o.model) == "" {
		return "", errors.New("openai: model is required")
	}

	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})
	body, err := json.Marshal(chatRequest{Model: o.model, Messages: msgs})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, o.client, req, o.maxRetries)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai: chat request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.New("openai: empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
