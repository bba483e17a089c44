// Package questionservice coordinates the question store, the catalog index
// and the README pipeline for the HTTP and MCP surfaces.
package questionservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/quizbook/internal/apperr"
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/pipeline"
	"github.com/starford/quizbook/internal/question"
	"github.com/starford/quizbook/internal/view"
)

// QuestionDetail is the full representation of one question.
type QuestionDetail struct {
	index.QuestionRow
	Href string `json:"href"`
	Body string `json:"body"`
}

// ViewInfo describes a configured view.
type ViewInfo struct {
	Name          string      `json:"name"`
	Mode          view.Mode   `json:"mode"`
	Filter        view.Filter `json:"filter"`
	SortByRanking bool        `json:"sort_by_ranking"`
}

// Generation is the payload of a document.generated event.
type Generation struct {
	pipeline.Report
	At time.Time `json:"at"`
}

// Publisher receives catalog and document events. *sse.Broker implements it.
type Publisher interface {
	PublishQuestionChanged(slugs ...string)
	PublishGenerated(data any)
}

// Deps are the collaborators of a Service.
type Deps struct {
	DB     *index.DB
	Store  *question.Store
	Driver *pipeline.Driver
	Views  []view.Config
	Locale string
	Events Publisher // optional
	Logger *slog.Logger
}

// Service is safe for concurrent use. Document generation is serialized.
type Service struct {
	db     *index.DB
	store  *question.Store
	driver *pipeline.Driver
	views  []view.Config
	locale string
	events Publisher
	logger *slog.Logger

	genMu sync.Mutex
}

// New creates a Service.
func New(d Deps) *Service {
	return &Service{
		db:     d.DB,
		store:  d.Store,
		driver: d.Driver,
		views:  d.Views,
		locale: d.Locale,
		events: d.Events,
		logger: d.Logger,
	}
}

// ListQuestions returns catalog rows matching f and the total match count.
func (s *Service) ListQuestions(_ context.Context, f index.Filter) ([]index.QuestionRow, int, error) {
	rows, total, err := s.db.List(f)
	if err != nil {
		return nil, 0, err
	}
	return nonNilSlice(rows), total, nil
}

// GetQuestion returns a catalog row with the full markdown body.
func (s *Service) GetQuestion(ctx context.Context, slug string) (*QuestionDetail, error) {
	row, err := s.db.Get(slug)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("question %s: %w", slug, apperr.ErrNotFound)
	}
	content, _, err := s.store.Content(ctx, slug, s.locale)
	if err != nil {
		return nil, err
	}
	return &QuestionDetail{QuestionRow: *row, Href: s.store.Href(slug), Body: content.RawBody}, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	res, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(res), nil
}

// Views lists the configured views in document order.
func (s *Service) Views() []ViewInfo {
	out := make([]ViewInfo, len(s.views))
	for i, v := range s.views {
		out[i] = ViewInfo{Name: v.Name, Mode: v.Mode, Filter: v.Filter, SortByRanking: v.SortByRanking}
	}
	return out
}

// RenderView renders one view without touching the document.
func (s *Service) RenderView(ctx context.Context, name string) (view.Output, error) {
	cfg, ok := s.view(name)
	if !ok {
		return view.Output{}, fmt.Errorf("view %s: %w", name, apperr.ErrNotFound)
	}
	slugs, err := s.store.Slugs(ctx)
	if err != nil {
		return view.Output{}, err
	}
	return s.driver.Preview(ctx, slugs, cfg)
}

func (s *Service) view(name string) (view.Config, bool) {
	for _, v := range s.views {
		if v.Name == name {
			return v, true
		}
	}
	return view.Config{}, false
}

// Generate regenerates the document and publishes a document.generated event.
func (s *Service) Generate(ctx context.Context) (pipeline.Report, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generate(ctx)
}

func (s *Service) generate(ctx context.Context) (pipeline.Report, error) {
	slugs, err := s.store.Slugs(ctx)
	if err != nil {
		return pipeline.Report{}, err
	}
	report, err := s.driver.Run(ctx, slugs, s.views)
	if err != nil {
		return report, err
	}
	if s.events != nil {
		s.events.PublishGenerated(Generation{Report: report, At: time.Now().UTC()})
	}
	return report, nil
}

// Refresh re-syncs the index and regenerates the document after the given
// questions changed on disk. It is the watcher callback of serve mode.
func (s *Service) Refresh(ctx context.Context, changed []string) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	stats, err := index.Sync(ctx, s.db, s.store, s.locale, s.logger)
	if err != nil {
		s.logger.Error("refresh: sync failed", slog.String("error", err.Error()))
		return
	}
	if s.events != nil {
		s.events.PublishQuestionChanged(changed...)
	}
	s.logger.Info("refresh: index synced",
		slog.Int("changed", len(changed)),
		slog.Int("indexed", len(stats.Indexed)),
		slog.Int("removed", len(stats.Removed)),
	)

	if _, err := s.generate(ctx); err != nil {
		s.logger.Error("refresh: generate failed", slog.String("error", err.Error()))
	}
}

// Sync brings the index up to date without regenerating the document.
func (s *Service) Sync(ctx context.Context) (index.SyncStats, error) {
	return index.Sync(ctx, s.db, s.store, s.locale, s.logger)
}

// Ready reports whether the index answers queries.
func (s *Service) Ready(_ context.Context) error {
	_, _, err := s.db.List(index.Filter{Limit: 1})
	return err
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
