// Package pipeline regenerates the README: it loads questions, renders every
// configured view and merges the results into the document in one write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/quizbook/internal/anchor"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/storage"
	"github.com/starford/quizbook/internal/view"
)

// Loader loads questions in slug order, dropping the ones that cannot be used.
type Loader interface {
	LoadAll(ctx context.Context, slugs []string, locale string) ([]models.Question, error)
}

// ViewReport summarizes one rendered view.
type ViewReport struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// Report summarizes a run.
type Report struct {
	Loaded  int          `json:"loaded"`
	Views   []ViewReport `json:"views"`
	Changed bool         `json:"changed"`
}

// Driver runs the pipeline against one target document.
type Driver struct {
	fs      storage.Provider
	loader  Loader
	builder *view.Builder
	docPath string
	locale  string
	logger  *slog.Logger
}

// NewDriver creates a Driver that rewrites docPath.
func NewDriver(fs storage.Provider, loader Loader, builder *view.Builder, docPath, locale string, logger *slog.Logger) *Driver {
	return &Driver{
		fs:      fs,
		loader:  loader,
		builder: builder,
		docPath: docPath,
		locale:  locale,
		logger:  logger,
	}
}

// Run renders every view into the document and writes it once. Nothing is
// written when any view fails or when the document would not change.
func (d *Driver) Run(ctx context.Context, slugs []string, views []view.Config) (Report, error) {
	original, err := d.fs.Read(d.docPath)
	if err != nil {
		return Report{}, fmt.Errorf("pipeline: read document: %w", err)
	}

	doc, report, err := d.Render(ctx, string(original), slugs, views)
	if err != nil {
		return report, err
	}

	if doc == string(original) {
		d.logger.Info("pipeline: document unchanged", slog.String("path", d.docPath))
		return report, nil
	}
	if err := d.fs.Write(d.docPath, []byte(doc)); err != nil {
		return report, fmt.Errorf("pipeline: write document: %w", err)
	}
	report.Changed = true
	d.logger.Info("pipeline: document written", slog.String("path", d.docPath), slog.Int("views", len(views)))
	return report, nil
}

// DryRun renders the document like Run but returns it instead of writing.
func (d *Driver) DryRun(ctx context.Context, slugs []string, views []view.Config) (string, Report, error) {
	original, err := d.fs.Read(d.docPath)
	if err != nil {
		return "", Report{}, fmt.Errorf("pipeline: read document: %w", err)
	}
	doc, report, err := d.Render(ctx, string(original), slugs, views)
	if err != nil {
		return "", report, err
	}
	report.Changed = doc != string(original)
	return doc, report, nil
}

// Render merges every view into doc and returns the new text. doc itself is
// not modified.
func (d *Driver) Render(ctx context.Context, doc string, slugs []string, views []view.Config) (string, Report, error) {
	questions, err := d.loader.LoadAll(ctx, slugs, d.locale)
	if err != nil {
		return "", Report{}, fmt.Errorf("pipeline: load questions: %w", err)
	}
	report := Report{Loaded: len(questions)}

	// Anchors are unique across the whole document, so all views share one
	// registry. Headings are assigned before any link list is built, so the
	// order of views in the configuration never shifts a heading anchor.
	reg := anchor.NewRegistry()
	outs := make([]view.Output, len(views))
	report.Views = make([]ViewReport, len(views))
	for _, pass := range []view.Mode{view.ModeFull, view.ModeBullets} {
		for i, cfg := range views {
			if (cfg.Mode == view.ModeBullets) != (pass == view.ModeBullets) {
				continue
			}
			var n int
			outs[i], n = d.build(questions, cfg, reg)
			report.Views[i] = ViewReport{Name: cfg.Name, Questions: n}
		}
	}

	for i, cfg := range views {
		if cfg.TOC.Start != "" {
			if doc, err = cfg.TOC.Apply(doc, outs[i].TOC); err != nil {
				return "", report, fmt.Errorf("pipeline: view %s toc: %w", cfg.Name, err)
			}
		}
		if doc, err = cfg.Body.Apply(doc, outs[i].Body); err != nil {
			return "", report, fmt.Errorf("pipeline: view %s body: %w", cfg.Name, err)
		}
		d.logger.Debug("pipeline: view merged", slog.String("view", cfg.Name), slog.Int("questions", report.Views[i].Questions))
	}
	return doc, report, nil
}

// Preview renders a single view without touching the document.
func (d *Driver) Preview(ctx context.Context, slugs []string, cfg view.Config) (view.Output, error) {
	questions, err := d.loader.LoadAll(ctx, slugs, d.locale)
	if err != nil {
		return view.Output{}, fmt.Errorf("pipeline: load questions: %w", err)
	}
	out, _ := d.build(questions, cfg, anchor.NewRegistry())
	return out, nil
}

func (d *Driver) build(questions []models.Question, cfg view.Config, reg *anchor.Registry) (view.Output, int) {
	var subset []models.Question
	for _, q := range questions {
		if cfg.Filter.Match(q.Metadata) {
			subset = append(subset, q)
		}
	}
	items := view.Arrange(subset, cfg, reg)
	return d.builder.Build(items, cfg), len(items)
}
