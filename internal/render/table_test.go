package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"stravaytd/internal/core"
)

func TestSummaryLayout(t *testing.T) {
	rows := []core.CategorySummary{
		{Category: "Run", Count: 20, DistanceMeters: 250000, TimeSeconds: 90000, Percent: 60},
		{Category: "Ride", Count: 10, DistanceMeters: 400000, TimeSeconds: 60000, Percent: 40},
	}
	out := Summary(rows, "km")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if utf8.RuneCountInString(lines[0]) != utf8.RuneCountInString(lines[1]) {
		t.Fatalf("lines not aligned:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "Running") {
		t.Fatalf("expected display name first, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "250.0 km") {
		t.Fatalf("expected km distance, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "█") || !strings.Contains(lines[1], "░") {
		t.Fatalf("expected bar chart cells:\n%s", out)
	}
}

func TestTableRightAlignment(t *testing.T) {
	rows := []core.CategorySummary{
		{Category: "A", DistanceMeters: 5},
		{Category: "B", DistanceMeters: 123456},
	}
	columns := []Column{
		{Value: func(r core.CategorySummary) string { return r.Category }},
		{Value: func(r core.CategorySummary) string { return FormatDistance(r.DistanceMeters, "meters") }, Right: true},
	}
	out := Table(rows, columns, "  ")
	lines := strings.Split(out, "\n")
	if !strings.HasSuffix(lines[0], "     5.00 m") {
		t.Fatalf("expected right-aligned short value, got %q", lines[0])
	}
	if len(lines[0]) != len(lines[1]) {
		t.Fatalf("columns not aligned:\n%s", out)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if out := Summary(nil, "meters"); out != "" {
		t.Fatalf("expected empty output for no rows, got %q", out)
	}
}
