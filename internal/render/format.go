package render

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const milesPerMeter = 0.000621371192

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// DisplayName turns a category into the label shown in the report:
// "Ride" becomes "Cycling", "NordicSki" normalizes upstream to "Ski" and
// renders as "Skiing", and so on.
func DisplayName(category string) string {
	if category == "EBikeRide" {
		return "E-biking"
	}
	if strings.HasSuffix(category, "Ride") {
		category = strings.Replace(category, "Ride", "Cycle", 1)
	}
	category = camelBoundary.ReplaceAllStringFunc(category, func(m string) string {
		return m[:1] + " " + strings.ToLower(m[1:])
	})

	lower := strings.ToLower(category)
	switch {
	case hasAnySuffix(lower, "ski", "surf", "board", "sail", "walk", "shoe"):
		return category + "ing"
	case hasAnySuffix(lower, "skate", "ride", "cycle", "hike"):
		return category[:len(category)-1] + "ing"
	case hasAnySuffix(lower, "swim", "run"):
		return category + category[len(category)-1:] + "ing"
	}
	return category
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// FormatDistance renders meters in the configured units.
func FormatDistance(meters float64, units string) string {
	switch units {
	case "km":
		return fmt.Sprintf("%.1f km", meters/1000)
	case "miles":
		return fmt.Sprintf("%.1f mi", meters*milesPerMeter)
	default:
		return fmt.Sprintf("%.2f m", meters)
	}
}

// FormatDuration renders seconds compactly, keeping the two most
// significant units out of s/m/h/d/w.
func FormatDuration(seconds int64) string {
	type period struct {
		symbol  string
		divisor int64
	}
	periods := []period{{"s", 60}, {"m", 60}, {"h", 24}, {"d", 7}, {"w", 0}}

	var parts []string
	carry := seconds
	for _, p := range periods {
		if p.divisor == 0 {
			parts = append(parts, fmt.Sprintf("%d%s", carry, p.symbol))
			break
		}
		parts = append(parts, fmt.Sprintf("%d%s", carry%p.divisor, p.symbol))
		carry /= p.divisor
		if carry == 0 {
			break
		}
	}

	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// BarChart renders a percentage as a fixed-width block bar.
func BarChart(percent float64, size int) string {
	full := int(math.Round(float64(size) * percent / 100))
	if full < 0 {
		full = 0
	}
	if full > size {
		full = size
	}
	return strings.Repeat("█", full) + strings.Repeat("░", size-full)
}
