package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/quizbook/internal/models"
)

// QuestionRow is one row of the questions table.
type QuestionRow struct {
	Slug      string       `json:"slug"`
	Locale    string       `json:"locale"`
	Title     string       `json:"title"`
	Level     models.Level `json:"level"`
	Ranking   int          `json:"ranking"`
	Featured  bool         `json:"featured"`
	Published bool         `json:"published"`
	Excerpt   string       `json:"excerpt"`
	Checksum  string       `json:"-"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// RowFromQuestion flattens a loaded question into a catalog row.
func RowFromQuestion(q models.Question, checksum string) QuestionRow {
	return QuestionRow{
		Slug:      q.Metadata.Slug,
		Locale:    q.Locale,
		Title:     q.Title,
		Level:     q.Metadata.Level,
		Ranking:   q.Metadata.Ranking,
		Featured:  q.Metadata.Featured,
		Published: q.Metadata.Published,
		Excerpt:   q.Content,
		Checksum:  checksum,
		UpdatedAt: time.Now().UTC(),
	}
}

// SearchResult is one search hit.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

const defaultSearchLimit = 20

func searchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}

// collectHits drains rows of (slug, title, snippet) and closes them.
func collectHits(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Slug, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("index: scan hit: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Level    models.Level
	Featured *bool
	Limit    int
	Offset   int
}

// Upsert inserts or replaces a question and its FTS entry in one transaction.
func (db *DB) Upsert(q QuestionRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO questions (slug, locale, title, level, ranking, featured, published, excerpt, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			locale     = excluded.locale,
			title      = excluded.title,
			level      = excluded.level,
			ranking    = excluded.ranking,
			featured   = excluded.featured,
			published  = excluded.published,
			excerpt    = excluded.excerpt,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, q.Slug, q.Locale, q.Title, string(q.Level), q.Ranking, q.Featured, q.Published, q.Excerpt, q.Checksum, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert question: %w", err)
	}

	if err := ftsUpsert(tx, q.Slug, q.Title, q.Excerpt); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a question and its FTS entry.
func (db *DB) Delete(slug string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, slug)
	if _, err := tx.Exec(`DELETE FROM questions WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("index: delete question: %w", err)
	}
	return tx.Commit()
}

// Checksum returns the stored checksum of slug, or "" if it is not indexed.
func (db *DB) Checksum(slug string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM questions WHERE slug = ?`, slug).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns slug -> checksum for every indexed question.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT slug, checksum FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var slug, cs string
		if err := rows.Scan(&slug, &cs); err != nil {
			return nil, err
		}
		out[slug] = cs
	}
	return out, rows.Err()
}

const selectColumns = `slug, locale, title, level, ranking, featured, published, excerpt, checksum, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (QuestionRow, error) {
	var (
		q     QuestionRow
		level string
	)
	err := s.Scan(&q.Slug, &q.Locale, &q.Title, &level, &q.Ranking, &q.Featured, &q.Published, &q.Excerpt, &q.Checksum, &q.UpdatedAt)
	q.Level = models.Level(level)
	return q, err
}

// Get returns a single question, or (nil, nil) when slug is not indexed.
func (db *DB) Get(slug string) (*QuestionRow, error) {
	q, err := scanRow(db.conn.QueryRow(`SELECT `+selectColumns+` FROM questions WHERE slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get question: %w", err)
	}
	return &q, nil
}

// List returns questions matching f ordered by ranking, plus the total
// number of matches ignoring Limit and Offset.
func (db *DB) List(f Filter) ([]QuestionRow, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Level != "" {
		where = append(where, "level = ?")
		args = append(args, string(f.Level))
	}
	if f.Featured != nil {
		where = append(where, "featured = ?")
		args = append(args, *f.Featured)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM questions`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count questions: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`SELECT `+selectColumns+` FROM questions`+cond+
		` ORDER BY ranking, slug LIMIT ? OFFSET ?`, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRow
	for rows.Next() {
		q, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}
