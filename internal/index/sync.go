package index

import (
	"context"
	"log/slog"

	"github.com/starford/quizbook/internal/models"
)

// Source is where Sync reads questions from.
type Source interface {
	Slugs(ctx context.Context) ([]string, error)
	Checksum(ctx context.Context, slug, locale string) (string, error)
	Load(ctx context.Context, slug, locale string) (*models.Question, error)
}

// SyncStats counts what one Sync changed.
type SyncStats struct {
	Indexed   []string
	Removed   []string
	Unchanged int
}

// Sync brings the catalog up to date with src:
//   - new or changed questions are loaded and upserted
//   - questions that are gone, or no longer load, are removed
//
// Per-question failures are logged and never abort the sync.
func Sync(ctx context.Context, db *DB, src Source, locale string, logger *slog.Logger) (SyncStats, error) {
	var stats SyncStats

	slugs, err := src.Slugs(ctx)
	if err != nil {
		return stats, err
	}
	checksums, err := db.AllChecksums()
	if err != nil {
		return stats, err
	}

	live := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		cs, err := src.Checksum(ctx, slug, locale)
		if err != nil {
			logger.Warn("sync: checksum failed", slog.String("slug", slug), slog.String("error", err.Error()))
			continue
		}
		if old, ok := checksums[slug]; ok && old == cs {
			live[slug] = struct{}{}
			stats.Unchanged++
			continue
		}

		q, err := src.Load(ctx, slug, locale)
		if err != nil {
			logger.Warn("sync: load failed", slog.String("slug", slug), slog.String("error", err.Error()))
			continue
		}
		if q == nil {
			logger.Debug("sync: no excerpt, not indexed", slog.String("slug", slug))
			continue
		}
		if err := db.Upsert(RowFromQuestion(*q, cs)); err != nil {
			logger.Warn("sync: index failed", slog.String("slug", slug), slog.String("error", err.Error()))
			continue
		}
		live[slug] = struct{}{}
		stats.Indexed = append(stats.Indexed, slug)
		logger.Debug("sync: indexed", slog.String("slug", slug))
	}

	for slug := range checksums {
		if _, ok := live[slug]; ok {
			continue
		}
		if err := db.Delete(slug); err != nil {
			logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
			continue
		}
		stats.Removed = append(stats.Removed, slug)
		logger.Debug("sync: removed stale", slog.String("slug", slug))
	}

	return stats, nil
}
