// Package merge replaces marker-delimited regions of a document.
//
// A region is delimited by two sentinel comments, e.g.
//
//	<!-- QUESTIONS:TOP:START -->
//	...generated...
//	<!-- QUESTIONS:TOP:END -->
//
// Text outside the sentinels is never touched.
package merge

import (
	"fmt"
	"strings"

	"github.com/starford/quizbook/internal/apperr"
)

// Markers names the start and end sentinels of one region.
type Markers struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Comment renders a sentinel name as the HTML comment that appears in the document.
func Comment(name string) string {
	return "<!-- " + name + " -->"
}

// Apply merges content into the region delimited by m.
func (m Markers) Apply(doc, content string) (string, error) {
	return Merge(doc, m.Start, m.End, content)
}

// Merge replaces the text strictly between the start and end sentinels with
// content surrounded by blank lines. Both sentinels must appear exactly once,
// start before end. Merging the same content twice yields the same document.
func Merge(doc, start, end, content string) (string, error) {
	startTag, endTag := Comment(start), Comment(end)

	if err := unique(doc, startTag); err != nil {
		return "", err
	}
	if err := unique(doc, endTag); err != nil {
		return "", err
	}
	if strings.Contains(content, startTag) || strings.Contains(content, endTag) {
		return "", fmt.Errorf("%w: content contains %s or %s", apperr.ErrAmbiguousMarker, startTag, endTag)
	}

	i := strings.Index(doc, startTag) + len(startTag)
	j := strings.Index(doc, endTag)
	if j < i {
		return "", fmt.Errorf("%w: %s does not follow %s", apperr.ErrMarkerNotFound, endTag, startTag)
	}

	var b strings.Builder
	b.Grow(i + len(content) + 4 + len(doc) - j)
	b.WriteString(doc[:i])
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(doc[j:])
	return b.String(), nil
}

func unique(doc, tag string) error {
	switch n := strings.Count(doc, tag); {
	case n == 0:
		return fmt.Errorf("%w: %s", apperr.ErrMarkerNotFound, tag)
	case n > 1:
		return fmt.Errorf("%w: %s appears %d times", apperr.ErrAmbiguousMarker, tag, n)
	}
	return nil
}
