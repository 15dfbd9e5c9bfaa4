package markup_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"daspub/internal/markup"
)

const courseText = `This preamble is ignored.

==Description
An introduction to architectural
   design studio practice.

==Format
3 hours studio, 1 hour lecture
==Instructors
* Jane Smith * John Doe *
==CACB Criteria
A1 - Design Skills * A2-Critical Thinking
`

func TestParseSections(t *testing.T) {
	sections, err := markup.Parse(strings.NewReader(courseText))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if got, want := sections.Get("Description"), "An introduction to architectural design studio practice."; got != want {
		t.Fatalf("description mismatch: got %q want %q", got, want)
	}
	if got, want := sections.Get("Format"), "3 hours studio, 1 hour lecture"; got != want {
		t.Fatalf("format mismatch: got %q want %q", got, want)
	}
	if got := sections.List("Instructors"); !reflect.DeepEqual(got, []string{"Jane Smith", "John Doe"}) {
		t.Fatalf("unexpected instructors: %#v", got)
	}
	if got := sections.List("CACB Criteria"); !reflect.DeepEqual(got, []string{"A1 - Design Skills", "A2-Critical Thinking"}) {
		t.Fatalf("unexpected criteria: %#v", got)
	}
	if sections.Has("") {
		t.Fatal("expected preamble to be discarded")
	}
}

func TestParseRoundTripModuloWhitespace(t *testing.T) {
	input := map[string]string{
		"Description": "first line second line",
		"Notes":       "one",
		"Format":      "a b c",
	}
	var b strings.Builder
	for _, title := range []string{"Description", "Notes", "Format"} {
		b.WriteString("==" + title + "\r\n")
		for _, word := range strings.Fields(input[title]) {
			b.WriteString("   " + word + "  \r\n\r\n")
		}
	}

	sections, err := markup.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for title, want := range input {
		if got := sections.Get(title); got != want {
			t.Fatalf("section %q: got %q want %q", title, got, want)
		}
	}
}

func TestParseRepeatedTitleContinuesSection(t *testing.T) {
	sections, err := markup.Parse(strings.NewReader("==Description\nfirst\n==Description\nsecond\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := sections.Get("Description"); got != "first second" {
		t.Fatalf("expected repeated title to extend the section, got %q", got)
	}
}

func TestParseWithoutTitlesKeepsFinalSection(t *testing.T) {
	sections, err := markup.Parse(strings.NewReader("just text\nmore text\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := sections.Get(""); got != "just text more text" {
		t.Fatalf("expected untitled final section, got %q", got)
	}
}

func TestParseEmptyTitledSection(t *testing.T) {
	sections, err := markup.Parse(strings.NewReader("==Description\n==Format\nweekly\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !sections.Has("Description") || sections.Get("Description") != "" {
		t.Fatalf("expected empty description section, got %#v", sections)
	}
	if sections.Get("Format") != "weekly" {
		t.Fatalf("unexpected format: %q", sections.Get("Format"))
	}
}

func TestParseFileMissing(t *testing.T) {
	sections, err := markup.ParseFile(filepath.Join(t.TempDir(), "course.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("expected empty sections, got %#v", sections)
	}
	if sections.Get("Description") != "" {
		t.Fatal("expected empty description for missing file")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignment.txt")
	if err := os.WriteFile(path, []byte("==Description\nBuild a chair.\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	sections, err := markup.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if sections.Get("Description") != "Build a chair." {
		t.Fatalf("unexpected description: %q", sections.Get("Description"))
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{"* a * b **  c *", []string{"a", "b", "c"}},
		{"one*two", []string{"one", "two"}},
	}
	for _, tt := range tests {
		got := markup.SplitList(tt.in, '*')
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
