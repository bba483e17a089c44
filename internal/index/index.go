package index

// Catalog is the question catalog. Consumers depend on it rather than on
// *DB so handlers can be tested with fakes.
type Catalog interface {
	Upsert(q QuestionRow) error
	Delete(slug string) error
	Checksum(slug string) (string, error)
	Get(slug string) (*QuestionRow, error)
	List(f Filter) ([]QuestionRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

var _ Catalog = (*DB)(nil)
