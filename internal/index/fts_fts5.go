//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS questions_fts USING fts5(
			slug UNINDEXED,
			title,
			excerpt,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func dropFTS(conn *sql.DB) error {
	_, err := conn.Exec(`DROP TABLE IF EXISTS questions_fts`)
	return err
}

func ftsUpsert(tx *sql.Tx, slug, title, excerpt string) error {
	ftsDelete(tx, slug)
	if _, err := tx.Exec(`INSERT INTO questions_fts (slug, title, excerpt) VALUES (?, ?, ?)`, slug, title, excerpt); err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, slug string) {
	_, _ = tx.Exec(`DELETE FROM questions_fts WHERE slug = ?`, slug)
}

// matchExpr turns free text into an FTS5 expression: every word becomes a
// quoted prefix term, so punctuation such as "what's" never reaches the
// query parser.
func matchExpr(query string) string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, `"`+strings.ReplaceAll(w, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

// Search ranks hits with bm25, weighting title matches above excerpt
// matches, and returns a highlighted excerpt snippet.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	expr := matchExpr(query)
	if expr == "" {
		return nil, nil
	}
	rows, err := db.conn.Query(`
		SELECT slug,
		       title,
		       snippet(questions_fts, 2, '**', '**', '...', 32)
		FROM questions_fts
		WHERE questions_fts MATCH ?
		ORDER BY bm25(questions_fts, 0.0, 10.0, 1.0)
		LIMIT ?
	`, expr, searchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return collectHits(rows)
}
