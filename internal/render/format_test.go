package render

import (
	"strings"
	"testing"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"Run", "Running"},
		{"Swim", "Swimming"},
		{"Ride", "Cycling"},
		{"EBikeRide", "E-biking"},
		{"Hike", "Hiking"},
		{"Ski", "Skiing"},
		{"Walk", "Walking"},
		{"Snowshoe", "Snowshoeing"},
		{"IceSkate", "Ice skating"},
		{"Kitesurf", "Kitesurfing"},
		{"WeightTraining", "Weight training"},
		{"Workout", "Workout"},
		{"Yoga", "Yoga"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.category); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.category, got, tc.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		units  string
		want   string
	}{
		{1234.5, "meters", "1234.50 m"},
		{1234.5, "km", "1.2 km"},
		{1609.344, "miles", "1.0 mi"},
		{0, "meters", "0.00 m"},
		// Unknown units fall back to meters.
		{100, "", "100.00 m"},
	}
	for _, tc := range cases {
		if got := FormatDistance(tc.meters, tc.units); got != tc.want {
			t.Fatalf("FormatDistance(%v, %q) = %q, want %q", tc.meters, tc.units, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{90, "1m 30s"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{90000, "1d 1h"},
		{691200, "1w 1d"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestBarChart(t *testing.T) {
	if got := BarChart(50, 28); strings.Count(got, "█") != 14 || strings.Count(got, "░") != 14 {
		t.Fatalf("BarChart(50, 28) = %q", got)
	}
	if got := BarChart(0, 10); got != strings.Repeat("░", 10) {
		t.Fatalf("BarChart(0, 10) = %q", got)
	}
	if got := BarChart(100, 10); got != strings.Repeat("█", 10) {
		t.Fatalf("BarChart(100, 10) = %q", got)
	}
	// Out-of-range input stays inside the bar.
	if got := BarChart(150, 10); got != strings.Repeat("█", 10) {
		t.Fatalf("BarChart(150, 10) = %q", got)
	}
}
