package core

import "context"

// Mode selects how much history an aggregation run retains.
type Mode int

const (
	// ModeSnapshot keeps only the latest running total.
	ModeSnapshot Mode = iota
	// ModeStepped appends an immutable snapshot per folded activity,
	// forming a replayable history.
	ModeStepped
)

// Source yields pages of activities in the order the provider returns
// them. An empty page ends the stream.
type Source interface {
	NextPage(ctx context.Context) ([]Activity, error)
}

// Aggregator folds an activity stream into per-category totals.
//
// Precondition: activities must arrive in ascending effective-date order.
// Crossing a year boundary discards all accumulated totals, so
// out-of-order input produces undefined totals.
type Aggregator struct {
	mode      Mode
	normalize func(string) string
	current   Snapshot
	trace     []Snapshot
}

// NewAggregator creates an aggregator. normalize maps raw provider type
// labels to category names; nil keeps labels as-is.
func NewAggregator(mode Mode, normalize func(string) string) *Aggregator {
	return &Aggregator{mode: mode, normalize: normalize}
}

// Add folds one activity into the running aggregate.
func (a *Aggregator) Add(act Activity) {
	effective := act.EffectiveDate()
	switch {
	case a.current.Totals == nil || a.current.Year != effective.Year():
		a.current = Snapshot{Year: effective.Year(), Totals: make(map[string]CategoryTotals)}
	case a.mode == ModeStepped:
		a.current = a.current.Clone()
	}

	category := act.Category
	if a.normalize != nil {
		category = a.normalize(category)
	}
	totals, seen := a.current.Totals[category]
	if !seen {
		a.current.Order = append(a.current.Order, category)
	}
	totals.Count++
	totals.TimeSeconds += act.MovingTimeSeconds
	totals.DistanceMeters += act.DistanceMeters
	a.current.Totals[category] = totals
	a.current.AsOf = effective

	if a.mode == ModeStepped || len(a.trace) == 0 {
		a.trace = append(a.trace, a.current)
	} else {
		a.trace[0] = a.current
	}
}

// Trace returns the accumulated snapshots: one per activity in stepped
// mode, at most one in snapshot mode.
func (a *Aggregator) Trace() []Snapshot {
	return a.trace
}

// Final returns the latest snapshot, or false when nothing was folded.
func (a *Aggregator) Final() (Snapshot, bool) {
	if len(a.trace) == 0 {
		return Snapshot{}, false
	}
	return a.trace[len(a.trace)-1], true
}

// Aggregate drains src page by page into a fresh Aggregator and returns
// the resulting trace.
func Aggregate(ctx context.Context, src Source, mode Mode, normalize func(string) string) ([]Snapshot, error) {
	agg := NewAggregator(mode, normalize)
	for {
		page, err := src.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return agg.Trace(), nil
		}
		for _, act := range page {
			agg.Add(act)
		}
	}
}
