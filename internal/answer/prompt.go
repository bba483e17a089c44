package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/starford/quizbook/internal/httputil"
)

// PromptSource locates the system prompt. File wins over URL.
type PromptSource struct {
	URL    string
	File   string
	Client *http.Client
}

// Load returns the system prompt text.
func (p PromptSource) Load(ctx context.Context) (string, error) {
	switch {
	case p.File != "":
		data, err := os.ReadFile(p.File)
		if err != nil {
			return "", fmt.Errorf("prompt: %w", err)
		}
		return string(data), nil
	case p.URL != "":
		return p.fetch(ctx)
	default:
		return "", errors.New("prompt: neither ai.prompt_file nor ai.prompt_url is set")
	}
}

func (p PromptSource) fetch(ctx context.Context) (string, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("prompt: fetch: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("prompt: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("prompt: fetch %s: status %d", p.URL, resp.StatusCode)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("prompt: empty system prompt")
	}
	return string(data), nil
}
