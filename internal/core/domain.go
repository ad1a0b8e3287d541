package core

import (
	"sort"
	"time"
)

type (
	// Activity is one entry of the remote activity feed. Immutable once
	// decoded; distance is meters, times are seconds.
	Activity struct {
		Category           string
		DistanceMeters     float64
		MovingTimeSeconds  int64
		ElapsedTimeSeconds int64
		Start              time.Time
	}

	// CategoryTotals accumulates one category's contribution.
	CategoryTotals struct {
		Count          int
		TimeSeconds    int64
		DistanceMeters float64
	}

	// Snapshot is the aggregate state after folding some prefix of the
	// activity stream. Totals is keyed by normalized category; Order holds
	// the categories in first-seen order and drives stable ranking.
	Snapshot struct {
		Year   int
		AsOf   time.Time
		Totals map[string]CategoryTotals
		Order  []string
	}

	// CategorySummary is one ranked row of the final report. Percent is the
	// category's share of total moving time, in the range 0-100.
	CategorySummary struct {
		Category       string
		Count          int
		DistanceMeters float64
		TimeSeconds    int64
		Percent        float64
	}
)

// EffectiveDate is the instant the activity finished: start plus elapsed
// duration. Year bucketing uses this, not the start time.
func (a Activity) EffectiveDate() time.Time {
	return a.Start.Add(time.Duration(a.ElapsedTimeSeconds) * time.Second)
}

// Clone returns a deep copy. Stepped traces rely on appended snapshots
// never sharing state with later ones.
func (s Snapshot) Clone() Snapshot {
	totals := make(map[string]CategoryTotals, len(s.Totals))
	for k, v := range s.Totals {
		totals[k] = v
	}
	order := make([]string, len(s.Order))
	copy(order, s.Order)
	return Snapshot{Year: s.Year, AsOf: s.AsOf, Totals: totals, Order: order}
}

// TotalTimeSeconds sums moving time across all categories.
func (s Snapshot) TotalTimeSeconds() int64 {
	var total int64
	for _, t := range s.Totals {
		total += t.TimeSeconds
	}
	return total
}

// TopCategories ranks up to n categories by descending activity count.
// Ties keep first-seen order. When the snapshot holds no moving time at
// all, every Percent is 0 rather than a division by zero.
func (s Snapshot) TopCategories(n int) []CategorySummary {
	ranked := make([]CategorySummary, 0, len(s.Order))
	for _, name := range s.Order {
		t := s.Totals[name]
		ranked = append(ranked, CategorySummary{
			Category:       name,
			Count:          t.Count,
			DistanceMeters: t.DistanceMeters,
			TimeSeconds:    t.TimeSeconds,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	total := s.TotalTimeSeconds()
	for i := range ranked {
		if total > 0 {
			ranked[i].Percent = float64(ranked[i].TimeSeconds) / float64(total) * 100
		}
	}
	return ranked
}
