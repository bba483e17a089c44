package answer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                                defaultEndpoint,
		"http://localhost:8080":           "http://localhost:8080/v1/chat/completions",
		"http://localhost:8080/v1/":       "http://localhost:8080/v1/chat/completions",
		"http://host/v1/chat/completions": "http://host/v1/chat/completions",
	}
	for in, want := range cases {
		assert.Equal(t, want, chatEndpoint(in), "input %q", in)
	}
}

func TestOpenAI_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, req.Messages[0])
		assert.Equal(t, chatMessage{Role: "user", Content: "What is a closure?"}, req.Messages[1])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"A function with its scope."}}]}`))
	}))
	defer ts.Close()

	c := NewOpenAI(OpenAIOptions{APIKey: "sk-test", Model: "gpt-4o", Endpoint: ts.URL, Client: ts.Client()})
	got, err := c.Complete(context.Background(), "sys", "What is a closure?")
	require.NoError(t, err)
	assert.Equal(t, "A function with its scope.", got)
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewOpenAI(OpenAIOptions{APIKey: "sk-test", Model: "gpt-4o", Endpoint: ts.URL, Client: ts.Client()})
	_, err := c.Complete(context.Background(), "", "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	c := NewOpenAI(OpenAIOptions{APIKey: "k", Model: "m", Endpoint: ts.URL, Client: ts.Client()})
	_, err := c.Complete(context.Background(), "", "q")
	assert.Error(t, err)
}

func TestOpenAI_RequiresKey(t *testing.T) {
	c := NewOpenAI(OpenAIOptions{Model: "m"})
	_, err := c.Complete(context.Background(), "", "q")
	assert.Error(t, err)
}

func TestPromptSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("You answer interview questions."))
	}))
	defer ts.Close()

	got, err := PromptSource{URL: ts.URL, Client: ts.Client()}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "You answer interview questions.", got)

	file := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file"), 0o644))
	got, err = PromptSource{URL: ts.URL, File: file}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	_, err = PromptSource{}.Load(context.Background())
	assert.Error(t, err)
}
