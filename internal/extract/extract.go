// Package extract isolates the TL;DR excerpt of a question body and rewrites
// its root-relative links to absolute URLs.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/starford/quizbook/internal/apperr"
)

var (
	// First "## TL;DR" heading line, one blank line, then everything up to a line that is exactly "---".
	tldrRe = regexp.MustCompile(`(?ms)^## TL;DR\n\n(.*?)^---$`)

	// Root-relative link destination. Protocol-relative "](//" is left alone.
	relLinkRe = regexp.MustCompile(`\]\(/([^/])`)

	// ATX heading of level three or deeper.
	subHeadingRe = regexp.MustCompile(`^ {0,3}#{3,6}(?:[ \t]|$)`)

	// Opening or closing line of a fenced code block.
	fenceRe = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// Extractor pulls excerpts out of question bodies.
type Extractor struct {
	baseURL string
}

// New returns an Extractor that prefixes root-relative links with baseURL.
func New(baseURL string) *Extractor {
	return &Extractor{baseURL: strings.TrimRight(baseURL, "/")}
}

// Extract returns the TL;DR excerpt of body. ok is false when body has no
// TL;DR section. An excerpt that contains a sub-heading fails with
// apperr.ErrMalformedContent.
func (e *Extractor) Extract(body string) (excerpt string, ok bool, err error) {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	m := tldrRe.FindStringSubmatch(body)
	if m == nil {
		return "", false, nil
	}
	part := m[1]
	for _, b := range splitFences(part) {
		if b.code {
			continue
		}
		for _, line := range strings.Split(b.text, "\n") {
			if subHeadingRe.MatchString(line) {
				return "", false, fmt.Errorf("%w: TL;DR contains heading %q", apperr.ErrMalformedContent, strings.TrimSpace(line))
			}
		}
	}
	return e.Normalize(part), true, nil
}

// Normalize rewrites root-relative link destinations outside code and trims
// surrounding whitespace. Normalize(Normalize(s)) == Normalize(s).
func (e *Extractor) Normalize(s string) string {
	var sb strings.Builder
	for _, b := range splitFences(s) {
		if b.code {
			sb.WriteString(b.text)
			continue
		}
		for _, span := range splitCodeSpans(b.text) {
			if span.code {
				sb.WriteString(span.text)
				continue
			}
			sb.WriteString(relLinkRe.ReplaceAllString(span.text, "]("+e.baseURL+"/${1}"))
		}
	}
	return strings.TrimSpace(sb.String())
}

// segment is a run of text that is either code or markdown prose.
type segment struct {
	text string
	code bool
}

// splitFences separates fenced code blocks, fences included, from the
// surrounding text. An unclosed fence runs to the end of s.
func splitFences(s string) []segment {
	var (
		out   []segment
		cur   strings.Builder
		fence string
	)
	flush := func(code bool) {
		if cur.Len() > 0 {
			out = append(out, segment{text: cur.String(), code: code})
			cur.Reset()
		}
	}
	for _, line := range strings.SplitAfter(s, "\n") {
		m := fenceRe.FindStringSubmatch(line)
		switch {
		case fence == "" && m != nil:
			flush(false)
			fence = m[1]
			cur.WriteString(line)
		case fence != "" && m != nil && m[1][0] == fence[0] && len(m[1]) >= len(fence) &&
			strings.TrimSpace(line) == strings.TrimSpace(m[0]):
			cur.WriteString(line)
			flush(true)
			fence = ""
		default:
			cur.WriteString(line)
		}
	}
	flush(fence != "")
	return out
}

// splitCodeSpans separates inline code spans from prose. A span opens with a
// run of backticks and closes with a run of the same length; a run without a
// match is literal text.
func splitCodeSpans(s string) []segment {
	var out []segment
	prose := 0
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		n := backtickRun(s, i)
		end := closingRun(s, i+n, n)
		if end < 0 {
			i += n
			continue
		}
		if prose < i {
			out = append(out, segment{text: s[prose:i]})
		}
		out = append(out, segment{text: s[i : end+n], code: true})
		i = end + n
		prose = i
	}
	if prose < len(s) {
		out = append(out, segment{text: s[prose:]})
	}
	return out
}

func backtickRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}

// closingRun returns the index of the next run of exactly n backticks at or
// after from, or -1.
func closingRun(s string, from, n int) int {
	for j := from; j < len(s); {
		if s[j] != '`' {
			j++
			continue
		}
		k := backtickRun(s, j)
		if k == n {
			return j
		}
		j += k
	}
	return -1
}
