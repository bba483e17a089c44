// Package rank writes question rankings from a fixed slug -> rank table into
// each question's metadata.
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/starford/quizbook/internal/models"
)

// Step spaces stored rankings so questions can later be slotted in between.
const Step = 10

// Table is an immutable slug -> rank mapping. Rank 1 is the most important.
type Table struct {
	ranks map[string]int
}

// NewTable copies m into a Table.
func NewTable(m map[string]int) Table {
	return Table{ranks: maps.Clone(m)}
}

// DefaultTable returns the built-in ranking.
func DefaultTable() Table {
	return NewTable(builtin)
}

// ParseTable reads a YAML mapping of slug to rank.
func ParseTable(data []byte) (Table, error) {
	var m map[string]int
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Table{}, fmt.Errorf("rank: parse table: %w", err)
	}
	for slug, r := range m {
		if r <= 0 {
			return Table{}, fmt.Errorf("rank: %s: rank must be positive, got %d", slug, r)
		}
	}
	return Table{ranks: m}, nil
}

// Rank returns the rank of slug.
func (t Table) Rank(slug string) (int, bool) {
	r, ok := t.ranks[slug]
	return r, ok
}

// Len returns the number of ranked slugs.
func (t Table) Len() int {
	return len(t.ranks)
}

// MetadataStore reads and writes question metadata.
type MetadataStore interface {
	Metadata(ctx context.Context, slug string) (models.QuestionMetadata, error)
	SaveMetadata(ctx context.Context, m models.QuestionMetadata) error
}

// Summary holds counts from one Apply call.
type Summary struct {
	Ranked  int
	Skipped int
	Failed  int
}

// Ranker applies a Table to stored questions.
type Ranker struct {
	store  MetadataStore
	table  Table
	logger *slog.Logger
}

// NewRanker creates a Ranker.
func NewRanker(store MetadataStore, table Table, logger *slog.Logger) *Ranker {
	return &Ranker{store: store, table: table, logger: logger}
}

// Apply sets ranking = rank*Step on every slug found in the table. Slugs
// missing from the table are skipped with a warning; per-question failures
// are logged and counted.
func (r *Ranker) Apply(ctx context.Context, slugs []string) (Summary, error) {
	var ranked, skipped, failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(16)
	for _, slug := range slugs {
		g.Go(func() error {
			rank, ok := r.table.Rank(slug)
			if !ok {
				r.logger.Warn("rank: no rank for question", slog.String("slug", slug))
				skipped.Add(1)
				return nil
			}
			m, err := r.store.Metadata(gCtx, slug)
			if err != nil {
				r.logger.Warn("rank: read metadata failed", slog.String("slug", slug), slog.String("error", err.Error()))
				failed.Add(1)
				return nil
			}
			m.Ranking = rank * Step
			if err := r.store.SaveMetadata(gCtx, m); err != nil {
				r.logger.Warn("rank: write metadata failed", slog.String("slug", slug), slog.String("error", err.Error()))
				failed.Add(1)
				return nil
			}
			ranked.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return Summary{Ranked: int(ranked.Load()), Skipped: int(skipped.Load()), Failed: int(failed.Load())}, nil
}
