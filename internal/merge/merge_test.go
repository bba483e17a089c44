package merge

import (
	"errors"
	"testing"

	"github.com/starford/quizbook/internal/apperr"
)

func TestMerge_Basic(t *testing.T) {
	got, err := Merge("<!-- S -->old<!-- E -->", "S", "E", "new")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := "<!-- S -->\n\nnew\n\n<!-- E -->"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMerge_PreservesOutside(t *testing.T) {
	doc := "# Title\n\nintro\n\n<!-- A:START -->\nstale\n<!-- A:END -->\n\nfooter\n"
	got, err := Merge(doc, "A:START", "A:END", "fresh")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := "# Title\n\nintro\n\n<!-- A:START -->\n\nfresh\n\n<!-- A:END -->\n\nfooter\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	docs := []string{
		"<!-- S -->old<!-- E -->",
		"head\n<!-- S -->\n\n<!-- E -->\ntail",
		"<!-- S --><!-- E -->",
	}
	for _, d := range docs {
		once, err := Merge(d, "S", "E", "| 1 | x |\n| 2 | y |")
		if err != nil {
			t.Fatalf("Merge(%q): %v", d, err)
		}
		twice, err := Merge(once, "S", "E", "| 1 | x |\n| 2 | y |")
		if err != nil {
			t.Fatalf("second Merge: %v", err)
		}
		if once != twice {
			t.Errorf("not idempotent:\n%q\n%q", once, twice)
		}
	}
}

func TestMerge_MissingStart(t *testing.T) {
	doc := "no markers <!-- E -->"
	got, err := Merge(doc, "S", "E", "x")
	if !errors.Is(err, apperr.ErrMarkerNotFound) {
		t.Fatalf("err = %v, want ErrMarkerNotFound", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty result on error", got)
	}
	if doc != "no markers <!-- E -->" {
		t.Error("input document changed")
	}
}

func TestMerge_MissingEnd(t *testing.T) {
	_, err := Merge("<!-- S --> body", "S", "E", "x")
	if !errors.Is(err, apperr.ErrMarkerNotFound) {
		t.Errorf("err = %v, want ErrMarkerNotFound", err)
	}
}

func TestMerge_EndBeforeStart(t *testing.T) {
	_, err := Merge("<!-- E --> mid <!-- S -->", "S", "E", "x")
	if !errors.Is(err, apperr.ErrMarkerNotFound) {
		t.Errorf("err = %v, want ErrMarkerNotFound", err)
	}
}

func TestMerge_DuplicateMarker(t *testing.T) {
	_, err := Merge("<!-- S -->a<!-- E --><!-- S -->b<!-- E -->", "S", "E", "x")
	if !errors.Is(err, apperr.ErrAmbiguousMarker) {
		t.Errorf("err = %v, want ErrAmbiguousMarker", err)
	}
}

func TestMerge_ContentContainingMarker(t *testing.T) {
	_, err := Merge("<!-- S --><!-- E -->", "S", "E", "sneaky <!-- E -->")
	if !errors.Is(err, apperr.ErrAmbiguousMarker) {
		t.Errorf("err = %v, want ErrAmbiguousMarker", err)
	}
}

func TestMarkers_Apply(t *testing.T) {
	m := Markers{Start: "TABLE_OF_CONTENTS:TOP:START", End: "TABLE_OF_CONTENTS:TOP:END"}
	doc := Comment(m.Start) + "\n" + Comment(m.End)
	got, err := m.Apply(doc, "toc")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := "<!-- TABLE_OF_CONTENTS:TOP:START -->\n\ntoc\n\n<!-- TABLE_OF_CONTENTS:TOP:END -->"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
