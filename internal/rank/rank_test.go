package rank

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/starford/quizbook/internal/models"
)

type memStore struct {
	mu    sync.Mutex
	metas map[string]models.QuestionMetadata
}

func (s *memStore) Metadata(_ context.Context, slug string) (models.QuestionMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.metas[slug]
	if !ok {
		return m, errors.New("not found")
	}
	return m, nil
}

func (s *memStore) SaveMetadata(_ context.Context, m models.QuestionMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metas[m.Slug] = m
	return nil
}

func TestApply(t *testing.T) {
	store := &memStore{metas: map[string]models.QuestionMetadata{
		"explain-hoisting": {Slug: "explain-hoisting", Level: models.LevelBasic, Featured: true},
		"unranked":         {Slug: "unranked", Ranking: 7},
	}}
	r := NewRanker(store, DefaultTable(), slog.New(slog.NewJSONHandler(io.Discard, nil)))

	sum, err := r.Apply(context.Background(), []string{"explain-hoisting", "unranked", "explain-event-delegation"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sum.Ranked != 1 || sum.Skipped != 1 || sum.Failed != 1 {
		t.Errorf("summary = %+v", sum)
	}
	got := store.metas["explain-hoisting"]
	if got.Ranking != 10 {
		t.Errorf("ranking = %d, want 10", got.Ranking)
	}
	if !got.Featured || got.Level != models.LevelBasic {
		t.Errorf("other fields changed: %+v", got)
	}
	if store.metas["unranked"].Ranking != 7 {
		t.Error("unranked question was modified")
	}
}

func TestDefaultTable(t *testing.T) {
	tbl := DefaultTable()
	if tbl.Len() != 50 {
		t.Errorf("len = %d, want 50", tbl.Len())
	}
	if r, ok := tbl.Rank("how-does-javascript-garbage-collection-work"); !ok || r != 50 {
		t.Errorf("rank = %d, %v", r, ok)
	}
}

func TestNewTable_Copies(t *testing.T) {
	m := map[string]int{"a": 1}
	tbl := NewTable(m)
	m["a"] = 99
	if r, _ := tbl.Rank("a"); r != 1 {
		t.Errorf("table changed with source map: %d", r)
	}
}

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable([]byte("a: 2\nb: 1\n"))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if r, _ := tbl.Rank("b"); r != 1 {
		t.Errorf("rank(b) = %d", r)
	}
	if _, err := ParseTable([]byte("a: 0\n")); err == nil {
		t.Error("zero rank should fail")
	}
	if _, err := ParseTable([]byte("a: [1]\n")); err == nil {
		t.Error("non-integer rank should fail")
	}
}
