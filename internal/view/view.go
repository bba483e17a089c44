// Package view renders question lists into markdown blocks for the README.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/starford/quizbook/internal/anchor"
	"github.com/starford/quizbook/internal/merge"
	"github.com/starford/quizbook/internal/models"
)

// Mode selects how a view is rendered.
type Mode string

const (
	// ModeFull renders a table of contents and one detailed block per question.
	ModeFull Mode = "full"
	// ModeBullets renders a numbered list of links and no table of contents.
	ModeBullets Mode = "bullets"
)

// Filter selects which questions belong to a view.
type Filter struct {
	Featured bool         `yaml:"featured" json:"featured"`
	Level    models.Level `yaml:"level" json:"level"`
}

// Match reports whether m passes the filter. The zero Filter matches everything.
func (f Filter) Match(m models.QuestionMetadata) bool {
	if f.Featured && !m.Featured {
		return false
	}
	if f.Level != "" && m.Level != f.Level {
		return false
	}
	return true
}

// Config describes one view of the document.
type Config struct {
	Name           string        `yaml:"name" json:"name"`
	Mode           Mode          `yaml:"mode" json:"mode"`
	Filter         Filter        `yaml:"filter" json:"filter"`
	SortByRanking  bool          `yaml:"sort_by_ranking" json:"sort_by_ranking"`
	ShowDetailLink bool          `yaml:"show_detail_link" json:"show_detail_link"`
	TOCAnchorID    string        `yaml:"toc_anchor_id" json:"toc_anchor_id"`
	TOC            merge.Markers `yaml:"toc" json:"toc"`
	Body           merge.Markers `yaml:"body" json:"body"`
}

// Output is the rendered text of one view.
type Output struct {
	TOC  string `json:"toc"`
	Body string `json:"body"`
}

// Options carry the site-wide link settings used by every view.
type Options struct {
	SourceDir      string // directory holding question folders, e.g. "questions"
	EditURLBase    string // e.g. "https://github.com/org/repo/blob/main"
	DetailSiteName string
	DetailSiteURL  string
}

// Builder renders views.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts Options) *Builder {
	opts.SourceDir = strings.Trim(opts.SourceDir, "/")
	opts.EditURLBase = strings.TrimRight(opts.EditURLBase, "/")
	return &Builder{opts: opts}
}

// Order returns questions in the order cfg renders them. Ranking sort is stable.
func Order[T any](xs []T, sortByRanking bool, ranking func(T) int) []T {
	out := slices.Clone(xs)
	if sortByRanking {
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(ranking(a), ranking(b))
		})
	}
	return out
}

func questionRanking(q models.Question) int { return q.Metadata.Ranking }
func itemRanking(it models.Item) int        { return it.Metadata.Ranking }

// Arrange orders questions for cfg and gives each one its in-document anchor.
// Anchors are taken in rendering order so repeated titles are numbered the
// way they appear in the document.
func Arrange(questions []models.Question, cfg Config, reg *anchor.Registry) []models.Item {
	sortBy := cfg.SortByRanking || cfg.Mode == ModeBullets
	ordered := Order(questions, sortBy, questionRanking)
	items := make([]models.Item, len(ordered))
	for i, q := range ordered {
		var a string
		if cfg.Mode == ModeBullets {
			a = reg.Link(q.Metadata.Slug, q.Title)
		} else {
			a = reg.Heading(q.Metadata.Slug, q.Title)
		}
		items[i] = models.Item{Question: q, TitleSlug: a}
	}
	return items
}

// Build renders items according to cfg.
func (b *Builder) Build(items []models.Item, cfg Config) Output {
	if cfg.Mode == ModeBullets {
		return Output{Body: b.BulletList(items)}
	}
	ordered := Order(items, cfg.SortByRanking, itemRanking)
	blocks := make([]string, len(ordered))
	for i, it := range ordered {
		blocks[i] = b.block(it, i+1, cfg)
	}
	return Output{
		TOC:  b.TableOfContents(ordered),
		Body: strings.Join(blocks, "\n"),
	}
}

// TableOfContents renders items as a numbered markdown table, in the given order.
func (b *Builder) TableOfContents(items []models.Item) string {
	lines := []string{
		"| No. | Questions | Level |",
		"| --- | :-------- | ----- |",
	}
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("| %d | [%s](#%s) | %s |", i+1, it.Title, it.TitleSlug, b.LevelLabel(it.Metadata.Level)))
	}
	return strings.Join(lines, "\n")
}

// BulletList renders items as "N. [title](#anchor)" lines, always by ranking.
func (b *Builder) BulletList(items []models.Item) string {
	ordered := Order(items, true, itemRanking)
	lines := make([]string, len(ordered))
	for i, it := range ordered {
		lines[i] = fmt.Sprintf("%d. [%s](#%s)", i+1, it.Title, it.TitleSlug)
	}
	return strings.Join(lines, "\n")
}

// LevelLabel capitalizes each word of a level, e.g. "intermediate" -> "Intermediate".
func (b *Builder) LevelLabel(l models.Level) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(string(l), "-", " "))
}

// SourcePath is the root-relative path of the file a question was authored in.
func (b *Builder) SourcePath(q models.Question) string {
	return fmt.Sprintf("/%s/%s/%s.mdx", b.opts.SourceDir, q.Metadata.Slug, q.Locale)
}

func (b *Builder) block(it models.Item, n int, cfg Config) string {
	const indent = "    "
	source := fmt.Sprintf("<!-- Update here: %s -->", b.SourcePath(it.Question))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. ### %s\n\n", n, it.Title)
	sb.WriteString(indent + source + "\n\n")
	for _, line := range strings.Split(it.Content, "\n") {
		if line != "" {
			sb.WriteString(indent)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + indent + source + "\n\n")
	sb.WriteString(indent + "<br>\n\n")
	if cfg.ShowDetailLink {
		fmt.Fprintf(&sb, "%s> Read the [detailed answer](%s) on [%s](%s) which allows progress tracking, contains more code samples, and useful resources.\n\n",
			indent, it.Href, b.opts.DetailSiteName, b.opts.DetailSiteURL)
	}
	fmt.Fprintf(&sb, "%s[Back to top ↑](#%s) · [Edit this answer ✏️](%s%s)\n", indent, cfg.TOCAnchorID, b.opts.EditURLBase, b.SourcePath(it.Question))
	sb.WriteString(indent + "<br>\n")
	sb.WriteString(indent + "<br>\n")
	return sb.String()
}
