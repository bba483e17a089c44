// Package apperr defines the error taxonomy shared by the content pipeline.
package apperr

import "errors"

// Per-question errors. They exclude a single question and never abort a run.
var (
	ErrNotFound     = errors.New("not found")
	ErrMissingField = errors.New("missing field")
	ErrSlugMismatch = errors.New("slug mismatch")
	ErrMissingTitle = errors.New("missing title")
)

// Structural errors. Any of these aborts the run before the document is written.
var (
	ErrMalformedContent = errors.New("malformed content")
	ErrMarkerNotFound   = errors.New("marker not found")
	ErrAmbiguousMarker  = errors.New("ambiguous marker")
)

// IsFatal reports whether err belongs to a class that must abort the whole run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMalformedContent) ||
		errors.Is(err, ErrMarkerNotFound) ||
		errors.Is(err, ErrAmbiguousMarker)
}
