// Package anchor generates GitHub-compatible heading anchors.
package anchor

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger hands out unique anchors for one document. Titles that slug to the
// same value get "-1", "-2", ... in the order they are requested, matching how
// GitHub numbers repeated headings. A Slugger is not safe for concurrent use.
type Slugger struct {
	occurrences map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{occurrences: make(map[string]int)}
}

// Slug returns the next unique anchor for title.
func (s *Slugger) Slug(title string) string {
	base := Slugify(title)
	result := base
	for {
		if _, taken := s.occurrences[result]; !taken {
			break
		}
		s.occurrences[base]++
		result = base + "-" + strconv.Itoa(s.occurrences[base])
	}
	s.occurrences[result] = 0
	return result
}

// Reset forgets every anchor handed out so far.
func (s *Slugger) Reset() {
	clear(s.occurrences)
}

// Slugify lowercases title, drops punctuation and symbols other than '-'
// and '_', and turns spaces into hyphens.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
