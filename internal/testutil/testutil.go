// Package testutil provides shared helpers that build a content tree, an
// index and a wired question service for tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/quizbook/internal/extract"
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/merge"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/pipeline"
	"github.com/starford/quizbook/internal/question"
	"github.com/starford/quizbook/internal/questionservice"
	"github.com/starford/quizbook/internal/storage"
	"github.com/starford/quizbook/internal/view"
)

// Readme is a minimal document carrying the markers of Views.
const Readme = `# Quiz

<!-- TABLE_OF_CONTENTS:TOP:START -->
<!-- TABLE_OF_CONTENTS:TOP:END -->

<!-- QUESTIONS:BASIC:START -->
<!-- QUESTIONS:BASIC:END -->

<!-- QUESTIONS:TOP:START -->
<!-- QUESTIONS:TOP:END -->
`

// Views returns a featured table view and a basic bullet view.
func Views() []view.Config {
	return []view.Config{
		{
			Name:           "top",
			Mode:           view.ModeFull,
			Filter:         view.Filter{Featured: true},
			SortByRanking:  true,
			ShowDetailLink: true,
			TOCAnchorID:    "table-of-contents",
			TOC:            merge.Markers{Start: "TABLE_OF_CONTENTS:TOP:START", End: "TABLE_OF_CONTENTS:TOP:END"},
			Body:           merge.Markers{Start: "QUESTIONS:TOP:START", End: "QUESTIONS:TOP:END"},
		},
		{
			Name:   "basic",
			Mode:   view.ModeBullets,
			Filter: view.Filter{Level: models.LevelBasic},
			Body:   merge.Markers{Start: "QUESTIONS:BASIC:START", End: "QUESTIONS:BASIC:END"},
		},
	}
}

// Fixture describes a question written by WriteQuestion.
type Fixture struct {
	Slug     string
	Title    string
	Ranking  int
	Level    models.Level
	Featured bool
	TLDR     string
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "quizbook-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContent creates a temporary content root holding Readme.
func TestContent(t *testing.T) (string, *storage.FS) {
	t.Helper()
	root := t.TempDir()
	fs, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Write("README.md", []byte(Readme)); err != nil {
		t.Fatal(err)
	}
	return root, fs
}

// WriteQuestion writes metadata.json and en-US.mdx for f.
func WriteQuestion(t *testing.T, fs storage.Provider, f Fixture) {
	t.Helper()
	if f.Level == "" {
		f.Level = models.LevelBasic
	}
	meta := fmt.Sprintf(`{"slug":%q,"ranking":%d,"level":%q,"importance":"high","featured":%v,"published":true}`,
		f.Slug, f.Ranking, f.Level, f.Featured)
	body := "---\ntitle: " + f.Title + "\n---\n\n## TL;DR\n\n" + f.TLDR + "\n---\n\n## Details\n\nLonger text.\n"
	if err := fs.Write("questions/"+f.Slug+"/metadata.json", []byte(meta)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Write("questions/"+f.Slug+"/en-US.mdx", []byte(body)); err != nil {
		t.Fatal(err)
	}
}

// Env is a wired question service over a temporary content tree.
type Env struct {
	Root    string
	FS      *storage.FS
	DB      *index.DB
	Store   *question.Store
	Service *questionservice.Service
}

// NewEnv writes fixtures, syncs the index and returns the wired service.
func NewEnv(t *testing.T, events questionservice.Publisher, fixtures ...Fixture) *Env {
	t.Helper()
	root, fs := TestContent(t)
	for _, f := range fixtures {
		WriteQuestion(t, fs, f)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := question.NewStore(fs, extract.New("https://example.com"), question.Options{
		Dir:           "questions",
		DetailURLBase: "https://example.com/questions/quiz",
	}, logger)
	builder := view.NewBuilder(view.Options{
		SourceDir:      "questions",
		EditURLBase:    "https://github.com/acme/quiz/blob/main",
		DetailSiteName: "Example",
		DetailSiteURL:  "https://example.com",
	})
	db := TestDB(t)
	svc := questionservice.New(questionservice.Deps{
		DB:     db,
		Store:  store,
		Driver: pipeline.NewDriver(fs, store, builder, "README.md", "en-US", logger),
		Views:  Views(),
		Locale: "en-US",
		Events: events,
		Logger: logger,
	})
	if _, err := svc.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	return &Env{Root: root, FS: fs, DB: db, Store: store, Service: svc}
}
