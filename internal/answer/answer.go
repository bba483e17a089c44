// Package answer fills unanswered questions with generated text and marks
// them published.
package answer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/quizbook/internal/models"
)

// DefaultPlaceholder marks where a generated answer goes.
const DefaultPlaceholder = "TODO_REPLACE_BODY"

// Completer produces text for a prompt under a system instruction.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Store is the subset of the question store the author needs.
type Store interface {
	Metadata(ctx context.Context, slug string) (models.QuestionMetadata, error)
	SaveMetadata(ctx context.Context, m models.QuestionMetadata) error
	Content(ctx context.Context, slug, locale string) (models.QuestionContent, []byte, error)
	WriteContent(ctx context.Context, slug, locale string, data []byte) error
}

// Summary holds counts from one Sync call.
type Summary struct {
	Answered int
	Skipped  int
	Failed   int
}

// HasFailures reports whether any question failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Author writes generated answers into question files.
type Author struct {
	store       Store
	completer   Completer
	system      string
	locale      string
	placeholder string
	logger      *slog.Logger
}

// Options configure an Author.
type Options struct {
	System      string // system prompt
	Locale      string
	Placeholder string
}

// NewAuthor creates an Author.
func NewAuthor(store Store, completer Completer, opts Options, logger *slog.Logger) *Author {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Locale == "" {
		opts.Locale = "en-US"
	}
	return &Author{
		store:       store,
		completer:   completer,
		system:      opts.System,
		locale:      opts.Locale,
		placeholder: opts.Placeholder,
		logger:      logger,
	}
}

var errNoPlaceholder = errors.New("placeholder not found")

// Sync answers every unpublished question in slugs, one at a time and in
// order. A failing question is logged and counted; Sync only returns an
// error when ctx is done.
func (a *Author) Sync(ctx context.Context, slugs []string) (Summary, error) {
	var sum Summary
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		done, err := a.answer(ctx, slug)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			a.logger.Error("answer: question failed", slog.String("slug", slug), slog.String("error", err.Error()))
			sum.Failed++
		case done:
			sum.Answered++
		default:
			sum.Skipped++
		}
	}
	return sum, nil
}

// answer reports false when the question is already published.
func (a *Author) answer(ctx context.Context, slug string) (bool, error) {
	meta, err := a.store.Metadata(ctx, slug)
	if err != nil {
		return false, err
	}
	if meta.Published {
		return false, nil
	}

	content, raw, err := a.store.Content(ctx, slug, a.locale)
	if err != nil {
		return false, err
	}
	if !bytes.Contains(raw, []byte(a.placeholder)) {
		return false, fmt.Errorf("%s: %w", slug, errNoPlaceholder)
	}

	a.logger.Info("answer: generating", slog.String("slug", slug), slog.String("title", content.Title))
	start := time.Now()
	text, err := a.completer.Complete(ctx, a.system, content.Title)
	if err != nil {
		return false, err
	}
	a.logger.Info("answer: generated",
		slog.String("slug", slug),
		slog.Duration("took", time.Since(start)),
	)

	updated := bytes.Replace(raw, []byte(a.placeholder), []byte(text), 1)
	updated = append(updated, '\n')
	if err := a.store.WriteContent(ctx, slug, a.locale, updated); err != nil {
		return false, err
	}

	meta.Published = true
	if err := a.store.SaveMetadata(ctx, meta); err != nil {
		return false, err
	}
	return true, nil
}
