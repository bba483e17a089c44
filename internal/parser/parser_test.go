package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Explain hoisting\n---\n\n## TL;DR\n\nAnswer.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Explain hoisting" {
		t.Errorf("title = %q, want %q", r.Title, "Explain hoisting")
	}
	if r.Body != "## TL;DR\n\nAnswer.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_QuotedTitleWithColon(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: 'What is `this`: a primer'\n---\nBody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "What is `this`: a primer" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "" {
		t.Errorf("title = %q, want empty (headings are not titles)", r.Title)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: Dangling\n\nBody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
}

func TestParse_NonStringTitle(t *testing.T) {
	r, _ := Parse([]byte("---\ntitle: 42\n---\nBody\n"))
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
}
