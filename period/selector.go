// Package period turns a reference date and a granularity into the current
// and previous comparable periods.
package period

import (
	"fmt"
	"time"

	"park-server/dataset"
	"park-server/models"
)

// Availability tags whether a reference date can be reported on.
type Availability int

const (
	Available Availability = iota
	Blackout
	OutOfRange
)

func (a Availability) String() string {
	switch a {
	case Blackout:
		return "blackout"
	case OutOfRange:
		return "out_of_range"
	}
	return "available"
}

// Truncate drops the clock from t and normalizes it to UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Current returns the period of the given granularity containing reference.
func Current(reference time.Time, g models.Granularity) (models.Period, error) {
	d := Truncate(reference)
	switch g {
	case models.Day:
		return models.Period{Start: d, End: d.AddDate(0, 0, 1)}, nil
	case models.Week:
		// Monday-based weeks: time.Sunday is 0.
		offset := (int(d.Weekday()) + 6) % 7
		start := d.AddDate(0, 0, -offset)
		return models.Period{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case models.Month:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return models.Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case models.Year:
		start := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return models.Period{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}
	return models.Period{}, fmt.Errorf("unknown granularity %q", g)
}

// Previous returns the comparable period immediately before p. Months step
// back one calendar month rather than a fixed number of days.
func Previous(p models.Period, g models.Granularity) (models.Period, error) {
	switch g {
	case models.Day:
		return models.Period{Start: p.Start.AddDate(0, 0, -1), End: p.Start}, nil
	case models.Week:
		return models.Period{Start: p.Start.AddDate(0, 0, -7), End: p.Start}, nil
	case models.Month:
		return models.Period{Start: p.Start.AddDate(0, -1, 0), End: p.Start}, nil
	case models.Year:
		return models.Period{Start: p.Start.AddDate(-1, 0, 0), End: p.Start}, nil
	}
	return models.Period{}, fmt.Errorf("unknown granularity %q", g)
}

// CurrentAndPrevious returns both periods for a reference date.
func CurrentAndPrevious(reference time.Time, g models.Granularity) (models.Period, models.Period, error) {
	current, err := Current(reference, g)
	if err != nil {
		return models.Period{}, models.Period{}, err
	}
	previous, err := Previous(current, g)
	if err != nil {
		return models.Period{}, models.Period{}, err
	}
	return current, previous, nil
}

// Classify checks a reference date against the closed-park window and the
// combined validity window of both sources.
func Classify(reference time.Time, g models.Granularity) Availability {
	d := Truncate(reference)
	if dataset.Blackout().Contains(d) {
		return Blackout
	}
	current, err := Current(d, g)
	if err != nil || !Comparable(current) {
		return OutOfRange
	}
	return Available
}

// Comparable reports whether p shares at least one date with the combined
// validity window. Periods entirely outside it have no KPIs to compare.
func Comparable(p models.Period) bool {
	w := dataset.CombinedWindow()
	return p.Overlaps(w.First, w.Last)
}
