//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

// Without FTS5 there is no side table; Search scans questions directly.
func initFTS(*sql.DB) error {
	return nil
}

func dropFTS(*sql.DB) error {
	return nil
}

func ftsUpsert(*sql.Tx, string, string, string) error {
	return nil
}

func ftsDelete(*sql.Tx, string) {}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the query as a substring of titles and excerpts. Title
// hits come first, then by ranking.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	like := "%" + likeEscaper.Replace(query) + "%"
	rows, err := db.conn.Query(`
		SELECT slug, title, substr(excerpt, 1, 200)
		FROM questions
		WHERE title LIKE ?1 ESCAPE '\' OR excerpt LIKE ?1 ESCAPE '\'
		ORDER BY (title LIKE ?1 ESCAPE '\') DESC, ranking, slug
		LIMIT ?2
	`, like, searchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return collectHits(rows)
}
