package api

import (
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/pipeline"
	"github.com/starford/quizbook/internal/questionservice"
	"github.com/starford/quizbook/internal/view"
)

// QuestionListResponse wraps paginated question listings.
type QuestionListResponse struct {
	Questions []index.QuestionRow `json:"questions"`
	Total     int                 `json:"total"`
}

// QuestionDetail is the single-question response (aliased from the domain layer).
type QuestionDetail = questionservice.QuestionDetail

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// ViewListResponse lists the configured views.
type ViewListResponse struct {
	Views []questionservice.ViewInfo `json:"views"`
}

// ViewResponse is a rendered view preview.
type ViewResponse struct {
	Name string `json:"name"`
	view.Output
}

// GenerateResponse reports a document regeneration.
type GenerateResponse struct {
	pipeline.Report
}
