package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/quizbook/internal/extract"
	"github.com/starford/quizbook/internal/pipeline"
	"github.com/starford/quizbook/internal/question"
	"github.com/starford/quizbook/internal/storage"
	"github.com/starford/quizbook/internal/view"
)

// components are the collaborators shared by every command.
type components struct {
	logger  *slog.Logger
	fs      *storage.FS
	store   *question.Store
	builder *view.Builder
	driver  *pipeline.Driver
}

func newApplication(opts []Option) (*application, error) {
	app := &application{
		version:   "dev",
		stdout:    os.Stdout,
		logOutput: os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, errors.New("config is required")
	}
	return app, nil
}

// wire builds the logger and the content pipeline from the configuration.
func (a *application) wire() (*components, error) {
	cfg := a.config

	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	fs, err := storage.NewFS(cfg.Content.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	store := question.NewStore(fs, extract.New(cfg.Content.BaseURL), question.Options{
		Dir:           cfg.Content.QuestionsDir,
		ListFile:      cfg.Content.ListFile,
		DetailURLBase: cfg.Content.DetailURLBase,
	}, logger)

	builder := view.NewBuilder(view.Options{
		SourceDir:      cfg.Content.QuestionsDir,
		EditURLBase:    cfg.Content.EditURLBase,
		DetailSiteName: cfg.Content.DetailSiteName,
		DetailSiteURL:  cfg.Content.BaseURL,
	})

	driver := pipeline.NewDriver(fs, store, builder, cfg.Content.DocumentPath, cfg.Content.Locale, logger)

	return &components{
		logger:  logger,
		fs:      fs,
		store:   store,
		builder: builder,
		driver:  driver,
	}, nil
}

// questionsDir returns the absolute directory watched in serve mode.
func (c *components) questionsDir(cfg *Config) string {
	return filepath.Join(c.fs.Root(), filepath.FromSlash(cfg.Content.QuestionsDir))
}
