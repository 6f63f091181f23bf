package main

import (
	"testing"

	"shelf/internal/library"
)

func TestParseItemID(t *testing.T) {
	if id, err := parseItemID(" 42 "); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	for _, input := range []string{"", "abc", "0", "-3"} {
		if _, err := parseItemID(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestTitleLine(t *testing.T) {
	withYear := &library.Item{Title: "Heat", Year: 1995}
	if got := titleLine(withYear); got != "Heat (1995)" {
		t.Fatalf("unexpected line: %q", got)
	}
	noYear := &library.Item{Title: "Unknown"}
	if got := titleLine(noYear); got != "Unknown" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Title"},
		[][]string{{"1"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if out == "" {
		t.Fatal("expected rendered table")
	}
}
