package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type recorder struct {
	mu     sync.Mutex
	bursts [][]string
}

func (r *recorder) record(_ context.Context, slugs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bursts = append(r.bursts, slugs)
}

func (r *recorder) seen(slug string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bursts {
		if slices.Contains(b, slug) {
			return true
		}
	}
	return false
}

func startWatch(t *testing.T, dir string, rec *recorder) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go Watch(ctx, dir, 50*time.Millisecond, logger, rec.record)
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_FileChangeReported(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "closures"), 0o755)
	rec := &recorder{}
	startWatch(t, dir, rec)

	_ = os.WriteFile(filepath.Join(dir, "closures", "en-US.mdx"), []byte("---\ntitle: x\n---\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.seen("closures")
	}, "expected closures in a change burst")
}

func TestWatcher_NewDirWatched(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatch(t, dir, rec)

	sub := filepath.Join(dir, "hoisting")
	_ = os.MkdirAll(sub, 0o755)
	time.Sleep(100 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(sub, "metadata.json"), []byte(`{}`), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.seen("hoisting")
	}, "new question directory not reported")
}

func TestWatcher_BurstDebounced(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "a"), 0o755)
	_ = os.MkdirAll(filepath.Join(dir, "b"), 0o755)
	rec := &recorder{}
	startWatch(t, dir, rec)

	_ = os.WriteFile(filepath.Join(dir, "a", "en-US.mdx"), []byte("1"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "b", "metadata.json"), []byte("1"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "a", "en-US.mdx"), []byte("2"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.seen("a") && rec.seen("b")
	}, "expected a and b reported")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.bursts) > 2 {
		t.Errorf("expected writes to coalesce, got %d bursts", len(rec.bursts))
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "a"), 0o755)
	rec := &recorder{}
	startWatch(t, dir, rec)

	_ = os.WriteFile(filepath.Join(dir, "a", "notes.txt"), []byte("x"), 0o644)
	time.Sleep(300 * time.Millisecond)

	if rec.seen("a") {
		t.Error("non-question file should not be reported")
	}
}

func TestSlugOf(t *testing.T) {
	root := filepath.Join("q")
	cases := []struct {
		path string
		slug string
		ok   bool
	}{
		{filepath.Join(root, "a", "metadata.json"), "a", true},
		{filepath.Join(root, "a", "en-US.mdx"), "a", true},
		{filepath.Join(root, "a"), "a", true},
		{filepath.Join(root, "a", "notes.txt"), "", false},
		{filepath.Join(root, ".git", "HEAD"), "", false},
		{filepath.Join(root, "a", "deep", "x.mdx"), "", false},
		{root, "", false},
	}
	for _, c := range cases {
		slug, ok := slugOf(root, c.path)
		if slug != c.slug || ok != c.ok {
			t.Errorf("slugOf(%q) = %q, %v, want %q, %v", c.path, slug, ok, c.slug, c.ok)
		}
	}
}
