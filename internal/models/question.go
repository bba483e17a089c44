// Package models defines the domain types for quizbook.
package models

// Level is the difficulty of a question.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists every difficulty in display order.
var Levels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced}

// QuestionMetadata mirrors a question's metadata.json.
type QuestionMetadata struct {
	Slug       string `json:"slug"`
	Ranking    int    `json:"ranking"`
	Level      Level  `json:"level"`
	Importance string `json:"importance"`
	Featured   bool   `json:"featured"`
	Published  bool   `json:"published"`
}

// QuestionContent is a localized markdown file split into title and body.
type QuestionContent struct {
	Title   string `json:"title"`
	Locale  string `json:"locale"`
	RawBody string `json:"-"`
}

// Question is a loaded question whose excerpt has been extracted and
// link-rewritten. It has no document anchor yet.
type Question struct {
	Metadata QuestionMetadata `json:"metadata"`
	Title    string           `json:"title"`
	Href     string           `json:"href"`
	Locale   string           `json:"locale"`
	Content  string           `json:"content"`
}

// Item is a Question placed in one document, with its in-document anchor.
// Items are built once and never mutated.
type Item struct {
	Question
	TitleSlug string `json:"title_slug"`
}
