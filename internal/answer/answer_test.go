package answer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/quizbook/internal/extract"
	"github.com/starford/quizbook/internal/question"
	"github.com/starford/quizbook/internal/storage"
)

type fakeCompleter struct {
	calls   []string
	systems []string
	fail    map[string]error
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls = append(f.calls, prompt)
	f.systems = append(f.systems, system)
	if err := f.fail[prompt]; err != nil {
		return "", err
	}
	return "Answer to " + prompt, nil
}

func setup(t *testing.T) (*question.Store, *storage.FS) {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	require.NoError(t, err)
	store := question.NewStore(fs, extract.New("https://example.com"), question.Options{Dir: "questions"},
		slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return store, fs
}

func put(t *testing.T, fs *storage.FS, slug, title string, published bool) {
	t.Helper()
	pub := "false"
	if published {
		pub = "true"
	}
	require.NoError(t, fs.Write("questions/"+slug+"/metadata.json",
		[]byte(`{"slug":"`+slug+`","ranking":10,"level":"basic","importance":"high","featured":false,"published":`+pub+`}`)))
	require.NoError(t, fs.Write("questions/"+slug+"/en-US.mdx",
		[]byte("---\ntitle: "+title+"\n---\n\nTODO_REPLACE_BODY")))
}

func TestSync_AnswersUnpublished(t *testing.T) {
	store, fs := setup(t)
	put(t, fs, "a", "What is A?", false)
	put(t, fs, "b", "What is B?", true)

	comp := &fakeCompleter{}
	author := NewAuthor(store, comp, Options{System: "be brief"}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	sum, err := author.Sync(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Answered: 1, Skipped: 1}, sum)
	assert.Equal(t, []string{"What is A?"}, comp.calls)
	assert.Equal(t, []string{"be brief"}, comp.systems)

	data, err := fs.Read("questions/a/en-US.mdx")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: What is A?\n---\n\nAnswer to What is A?\n", string(data))

	meta, err := store.Metadata(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, meta.Published)

	untouched, err := fs.Read("questions/b/en-US.mdx")
	require.NoError(t, err)
	assert.Contains(t, string(untouched), DefaultPlaceholder)
}

func TestSync_SecondRunSkips(t *testing.T) {
	store, fs := setup(t)
	put(t, fs, "a", "What is A?", false)

	comp := &fakeCompleter{}
	author := NewAuthor(store, comp, Options{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	_, err := author.Sync(context.Background(), []string{"a"})
	require.NoError(t, err)
	sum, err := author.Sync(context.Background(), []string{"a"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Skipped: 1}, sum)
	assert.Len(t, comp.calls, 1)
}

func TestSync_FailureIsolated(t *testing.T) {
	store, fs := setup(t)
	put(t, fs, "a", "What is A?", false)
	put(t, fs, "b", "What is B?", false)

	comp := &fakeCompleter{fail: map[string]error{"What is A?": errors.New("boom")}}
	author := NewAuthor(store, comp, Options{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	sum, err := author.Sync(context.Background(), []string{"a", "missing", "b"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Answered: 1, Failed: 2}, sum)
	assert.True(t, sum.HasFailures())

	meta, err := store.Metadata(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, meta.Published)
}

func TestSync_NoPlaceholder(t *testing.T) {
	store, fs := setup(t)
	put(t, fs, "a", "What is A?", false)
	require.NoError(t, fs.Write("questions/a/en-US.mdx", []byte("---\ntitle: What is A?\n---\n\nWritten by hand.\n")))

	comp := &fakeCompleter{}
	author := NewAuthor(store, comp, Options{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	sum, err := author.Sync(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed)
	assert.Empty(t, comp.calls)
}

func TestSync_CancelledContext(t *testing.T) {
	store, fs := setup(t)
	put(t, fs, "a", "What is A?", false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	author := NewAuthor(store, &fakeCompleter{}, Options{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	_, err := author.Sync(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
