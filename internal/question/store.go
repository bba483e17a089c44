// Package question loads questions from the content tree: one directory per
// slug holding metadata.json and one <locale>.mdx file per locale.
package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/starford/quizbook/internal/apperr"
	"github.com/starford/quizbook/internal/checksum"
	"github.com/starford/quizbook/internal/extract"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/parser"
	"github.com/starford/quizbook/internal/storage"
)

const metadataFile = "metadata.json"

// maxParallelLoads bounds concurrent question reads in LoadAll.
const maxParallelLoads = 16

// Options configure where questions live and how their links are built.
type Options struct {
	Dir           string // directory holding one folder per slug
	ListFile      string // optional JSON object of group -> [slug...]
	DetailURLBase string // detail page of a question is DetailURLBase/<slug>
}

// Store reads and writes questions through a storage.Provider.
type Store struct {
	fs        storage.Provider
	extractor *extract.Extractor
	opts      Options
	logger    *slog.Logger
}

// NewStore creates a question store.
func NewStore(fs storage.Provider, extractor *extract.Extractor, opts Options, logger *slog.Logger) *Store {
	if opts.Dir == "" {
		opts.Dir = "questions"
	}
	opts.DetailURLBase = strings.TrimRight(opts.DetailURLBase, "/")
	return &Store{fs: fs, extractor: extractor, opts: opts, logger: logger}
}

// MetadataPath returns the metadata file path for slug.
func (s *Store) MetadataPath(slug string) string {
	return path.Join(s.opts.Dir, slug, metadataFile)
}

// ContentPath returns the localized markdown path for slug.
func (s *Store) ContentPath(slug, locale string) string {
	return path.Join(s.opts.Dir, slug, locale+".mdx")
}

// Href returns the detail page URL of slug.
func (s *Store) Href(slug string) string {
	return s.opts.DetailURLBase + "/" + slug
}

// Slugs returns every question slug. The list file decides the order when it
// exists; otherwise question directories are listed alphabetically.
func (s *Store) Slugs(_ context.Context) ([]string, error) {
	if s.opts.ListFile != "" {
		data, err := s.fs.Read(s.opts.ListFile)
		switch {
		case err == nil:
			return ReadList(data)
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	return s.fs.Dirs(s.opts.Dir)
}

// Metadata reads and validates the metadata of slug.
func (s *Store) Metadata(_ context.Context, slug string) (models.QuestionMetadata, error) {
	data, err := s.read(s.MetadataPath(slug))
	if err != nil {
		return models.QuestionMetadata{}, err
	}
	return ParseMetadata(slug, data)
}

// ParseMetadata decodes metadata.json and checks it belongs to slug.
func ParseMetadata(slug string, data []byte) (models.QuestionMetadata, error) {
	var m models.QuestionMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("%s: decode metadata: %w", slug, err)
	}
	if err := validateMetadata(&m); err != nil {
		return m, fmt.Errorf("%s: %w: %v", slug, apperr.ErrMissingField, err)
	}
	if m.Slug != slug {
		return m, fmt.Errorf("%s: %w: metadata says %q", slug, apperr.ErrSlugMismatch, m.Slug)
	}
	return m, nil
}

func validateMetadata(m *models.QuestionMetadata) error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Slug, validation.Required),
		validation.Field(&m.Level, validation.In(models.LevelBasic, models.LevelIntermediate, models.LevelAdvanced)),
	)
}

// SaveMetadata writes the fields of m into metadata.json. Keys of the
// existing file that m does not model are kept in place; a missing file is
// created. Output is indented by two spaces and ends with a newline.
func (s *Store) SaveMetadata(_ context.Context, m models.QuestionMetadata) error {
	typed, err := marshalNoEscape(m)
	if err != nil {
		return fmt.Errorf("%s: encode metadata: %w", m.Slug, err)
	}
	update, err := decodeObject(typed)
	if err != nil {
		return fmt.Errorf("%s: encode metadata: %w", m.Slug, err)
	}

	members := update
	existing, err := s.read(s.MetadataPath(m.Slug))
	switch {
	case err == nil:
		base, err := decodeObject(existing)
		if err != nil {
			return fmt.Errorf("%s: decode metadata: %w", m.Slug, err)
		}
		members = patchObject(base, update)
	case !errors.Is(err, apperr.ErrNotFound):
		return err
	}

	data, err := encodeObject(members)
	if err != nil {
		return fmt.Errorf("%s: encode metadata: %w", m.Slug, err)
	}
	return s.fs.Write(s.MetadataPath(m.Slug), data)
}

// Content reads the localized markdown of slug. The raw file is returned
// alongside the parsed content so callers can rewrite it.
func (s *Store) Content(_ context.Context, slug, locale string) (models.QuestionContent, []byte, error) {
	p := s.ContentPath(slug, locale)
	data, err := s.read(p)
	if err != nil {
		return models.QuestionContent{}, nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return models.QuestionContent{}, nil, fmt.Errorf("%s: parse: %w", p, err)
	}
	c := models.QuestionContent{Title: res.Title, Locale: locale, RawBody: res.Body}
	if c.Title == "" {
		return c, data, fmt.Errorf("%s: %w", p, apperr.ErrMissingTitle)
	}
	return c, data, nil
}

// WriteContent replaces the localized markdown of slug.
func (s *Store) WriteContent(_ context.Context, slug, locale string, data []byte) error {
	return s.fs.Write(s.ContentPath(slug, locale), data)
}

// Load reads one question. It returns (nil, nil) when the body has no TL;DR
// section. Metadata and body are read concurrently.
func (s *Store) Load(ctx context.Context, slug, locale string) (*models.Question, error) {
	var (
		meta    models.QuestionMetadata
		content models.QuestionContent
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta, err = s.Metadata(gCtx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		content, _, err = s.Content(gCtx, slug, locale)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excerpt, ok, err := s.extractor.Extract(content.RawBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.ContentPath(slug, locale), err)
	}
	if !ok {
		return nil, nil
	}

	return &models.Question{
		Metadata: meta,
		Title:    content.Title,
		Href:     s.Href(meta.Slug),
		Locale:   locale,
		Content:  excerpt,
	}, nil
}

// LoadAll loads slugs concurrently and returns the loaded questions in the
// order of slugs. A question that fails to load is logged and left out.
// Errors for which apperr.IsFatal holds stop the batch and are returned.
func (s *Store) LoadAll(ctx context.Context, slugs []string, locale string) ([]models.Question, error) {
	results := make([]*models.Question, len(slugs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, slug := range slugs {
		g.Go(func() error {
			q, err := s.Load(gCtx, slug, locale)
			switch {
			case err == nil && q == nil:
				s.logger.Debug("question: no TL;DR, skipped", slog.String("slug", slug), slog.String("locale", locale))
			case err == nil:
				results[i] = q
			case apperr.IsFatal(err):
				return err
			default:
				s.logger.Warn("question: excluded", slog.String("slug", slug), slog.String("locale", locale), slog.String("error", err.Error()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Question, 0, len(slugs))
	for _, q := range results {
		if q != nil {
			out = append(out, *q)
		}
	}
	return out, nil
}

// Checksum digests the metadata and localized markdown of slug together, so
// a change to either file changes the result.
func (s *Store) Checksum(_ context.Context, slug, locale string) (string, error) {
	meta, err := s.read(s.MetadataPath(slug))
	if err != nil {
		return "", err
	}
	body, err := s.read(s.ContentPath(slug, locale))
	if err != nil {
		return "", err
	}
	return checksum.SumAll(meta, body), nil
}

func (s *Store) read(p string) ([]byte, error) {
	data, err := s.fs.Read(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
		}
		return nil, err
	}
	return data, nil
}
