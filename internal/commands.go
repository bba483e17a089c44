package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/quizbook/internal/answer"
	"github.com/starford/quizbook/internal/apperr"
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/mcpserver"
	"github.com/starford/quizbook/internal/questionservice"
	"github.com/starford/quizbook/internal/rank"
)

// Generate regenerates every configured view of the document. With
// WithDryRun the merged document is printed instead of written.
func Generate(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	c, err := app.wire()
	if err != nil {
		return err
	}
	cfg := app.config

	slugs, err := c.store.Slugs(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	if app.dryRun {
		doc, report, err := c.driver.DryRun(ctx, slugs, cfg.Views)
		if err != nil {
			return err
		}
		c.logger.Info("generate: dry run",
			slog.Int("loaded", report.Loaded),
			slog.Bool("changed", report.Changed))
		_, err = fmt.Fprint(app.stdout, doc)
		return err
	}

	report, err := c.driver.Run(ctx, slugs, cfg.Views)
	if err != nil {
		return err
	}
	for _, v := range report.Views {
		c.logger.Info("generate: view", slog.String("view", v.Name), slog.Int("questions", v.Questions))
	}
	c.logger.Info("generate: done",
		slog.Int("loaded", report.Loaded),
		slog.Bool("changed", report.Changed))
	return nil
}

// Check loads every question the way Generate does and reports the ones
// that would be left out. It then renders the document without writing it,
// so broken markers are reported too. Only fatal problems fail the command.
func Check(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	c, err := app.wire()
	if err != nil {
		return err
	}
	cfg := app.config

	slugs, err := c.store.Slugs(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	var fatal error
	excluded, absent := 0, 0
	for _, slug := range slugs {
		q, err := c.store.Load(ctx, slug, cfg.Content.Locale)
		switch {
		case err != nil && apperr.IsFatal(err):
			fmt.Fprintf(app.stdout, "FATAL  %s: %v\n", slug, err)
			fatal = errors.Join(fatal, err)
		case err != nil:
			fmt.Fprintf(app.stdout, "SKIP   %s: %v\n", slug, err)
			excluded++
		case q == nil:
			fmt.Fprintf(app.stdout, "EMPTY  %s: no TL;DR section\n", slug)
			absent++
		}
	}

	if fatal == nil {
		if _, _, err := c.driver.DryRun(ctx, slugs, cfg.Views); err != nil {
			fmt.Fprintf(app.stdout, "FATAL  %s: %v\n", cfg.Content.DocumentPath, err)
			fatal = err
		}
	}

	fmt.Fprintf(app.stdout, "%d questions, %d excluded, %d without TL;DR\n", len(slugs), excluded, absent)
	if fatal != nil {
		return fmt.Errorf("check failed: %w", fatal)
	}
	return nil
}

// Rank rewrites the ranking of every question found in the rank table.
func Rank(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	c, err := app.wire()
	if err != nil {
		return err
	}

	table, err := loadRankTable(app.rankTable, app.config.Content.RankFile)
	if err != nil {
		return err
	}
	slugs, err := c.store.Slugs(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	sum, err := rank.NewRanker(c.store, table, c.logger).Apply(ctx, slugs)
	if err != nil {
		return err
	}
	c.logger.Info("rank: done",
		slog.Int("ranked", sum.Ranked),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed))
	if sum.Failed > 0 {
		return fmt.Errorf("rank: %d questions failed", sum.Failed)
	}
	return nil
}

// loadRankTable prefers the command-line file, then the configured file,
// then the built-in table.
func loadRankTable(flagPath, cfgPath string) (rank.Table, error) {
	p := flagPath
	if p == "" {
		p = cfgPath
	}
	if p == "" {
		return rank.DefaultTable(), nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return rank.Table{}, fmt.Errorf("read rank table: %w", err)
	}
	return rank.ParseTable(data)
}

// Answer generates answers for unpublished questions, one at a time.
func Answer(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	c, err := app.wire()
	if err != nil {
		return err
	}
	ai := app.config.AI

	if ai.APIKey == "" {
		return errors.New("answer: ai.api_key is empty")
	}
	system, err := answer.PromptSource{URL: ai.PromptURL, File: ai.PromptFile}.Load(ctx)
	if err != nil {
		return err
	}
	slugs, err := c.store.Slugs(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	completer := answer.NewOpenAI(answer.OpenAIOptions{
		APIKey:     ai.APIKey,
		Model:      ai.Model,
		Endpoint:   ai.Endpoint,
		MaxRetries: ai.MaxRetries,
	})
	author := answer.NewAuthor(c.store, completer, answer.Options{
		System:      system,
		Locale:      app.config.Content.Locale,
		Placeholder: ai.Placeholder,
	}, c.logger)

	sum, err := author.Sync(ctx, slugs)
	if err != nil {
		return err
	}
	c.logger.Info("answer: done",
		slog.Int("answered", sum.Answered),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed))
	if sum.HasFailures() {
		return fmt.Errorf("answer: %d questions failed", sum.Failed)
	}
	return nil
}

// ServeMCP indexes the questions and serves the MCP tools over stdio.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	c, err := app.wire()
	if err != nil {
		return err
	}
	cfg := app.config

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	svc := questionservice.New(questionservice.Deps{
		DB:     db,
		Store:  c.store,
		Driver: c.driver,
		Views:  cfg.Views,
		Locale: cfg.Content.Locale,
		Logger: c.logger,
	})
	if _, err := svc.Sync(ctx); err != nil {
		c.logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	c.logger.Info("mcp: serving on stdio", slog.String("version", app.version))
	return mcpserver.New(svc, app.version).ServeStdio()
}
