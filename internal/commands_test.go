package internal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/question"
	"github.com/starford/quizbook/internal/testutil"
)

func testConfig(t *testing.T) (*Config, string) {
	t.Helper()
	root, fs := testutil.TestContent(t)
	testutil.WriteQuestion(t, fs, testutil.Fixture{Slug: "hoisting", Title: "Explain hoisting", Ranking: 20, Featured: true, TLDR: "Declarations move up."})
	testutil.WriteQuestion(t, fs, testutil.Fixture{Slug: "closures", Title: "What is a closure?", Ranking: 10, Level: models.LevelIntermediate, Featured: true, TLDR: "A function plus its scope."})

	cfg := NewDefaultConfig()
	cfg.Content.Root = root
	cfg.Views = testutil.Views()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "quizbook.db")
	return cfg, root
}

func runOpts(cfg *Config, out io.Writer, extra ...Option) []Option {
	return append([]Option{
		WithConfig(cfg),
		WithStdout(out),
		WithLogOutput(io.Discard),
	}, extra...)
}

func TestGenerate_WritesDocument(t *testing.T) {
	cfg, root := testConfig(t)
	if err := Generate(context.Background(), runOpts(cfg, io.Discard)...); err != nil {
		t.Fatal(err)
	}

	doc, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(doc)
	if !strings.Contains(text, "1. [Explain hoisting](#explain-hoisting)") {
		t.Errorf("basic list missing:\n%s", text)
	}
	if strings.Index(text, "[What is a closure?]") > strings.Index(text, "| 2 | [Explain hoisting]") {
		t.Errorf("featured table not ranked:\n%s", text)
	}
}

func TestGenerate_DryRunLeavesDocument(t *testing.T) {
	cfg, root := testConfig(t)
	var out bytes.Buffer
	if err := Generate(context.Background(), runOpts(cfg, &out, WithDryRun(true))...); err != nil {
		t.Fatal(err)
	}

	doc, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != testutil.Readme {
		t.Error("dry run modified the document")
	}
	if !strings.Contains(out.String(), "A function plus its scope.") {
		t.Errorf("dry run output:\n%s", out.String())
	}
}

func TestCheck(t *testing.T) {
	cfg, root := testConfig(t)
	if err := os.WriteFile(filepath.Join(root, "questions", "hoisting", "en-US.mdx"), []byte("---\ntitle: Explain hoisting\n---\n\nNo summary yet.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Check(context.Background(), runOpts(cfg, &out)...); err != nil {
		t.Fatalf("check: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "EMPTY  hoisting") {
		t.Errorf("output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2 questions, 0 excluded, 1 without TL;DR") {
		t.Errorf("summary:\n%s", out.String())
	}
}

func TestCheck_MissingMarkerFails(t *testing.T) {
	cfg, root := testConfig(t)
	broken := strings.Replace(testutil.Readme, "<!-- QUESTIONS:BASIC:END -->\n", "", 1)
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Check(context.Background(), runOpts(cfg, &out)...); err == nil {
		t.Fatal("expected error for missing marker")
	}
	if !strings.Contains(out.String(), "FATAL  README.md") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRank_FromTableFile(t *testing.T) {
	cfg, root := testConfig(t)
	table := filepath.Join(t.TempDir(), "ranks.yaml")
	if err := os.WriteFile(table, []byte("closures: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Rank(context.Background(), runOpts(cfg, io.Discard, WithRankTable(table))...); err != nil {
		t.Fatal(err)
	}

	read := func(slug string) models.QuestionMetadata {
		data, err := os.ReadFile(filepath.Join(root, "questions", slug, "metadata.json"))
		if err != nil {
			t.Fatal(err)
		}
		m, err := question.ParseMetadata(slug, data)
		if err != nil {
			t.Fatal(err)
		}
		return m
	}
	if got := read("closures").Ranking; got != 30 {
		t.Errorf("closures ranking = %d, want 30", got)
	}
	if got := read("hoisting").Ranking; got != 20 {
		t.Errorf("hoisting ranking = %d, want unchanged 20", got)
	}
}

func TestAnswer_RequiresAPIKey(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.AI.APIKey = ""
	err := Answer(context.Background(), runOpts(cfg, io.Discard)...)
	if err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Errorf("err = %v", err)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Error("expected error without config")
	}
}
