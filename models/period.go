package models

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the length of a dashboard period.
type Granularity string

const (
	Day   Granularity = "daily"
	Week  Granularity = "weekly"
	Month Granularity = "monthly"
	Year  Granularity = "yearly"
)

// Granularities lists the supported granularities in page order.
var Granularities = []Granularity{Year, Month, Week, Day}

// ParseGranularity accepts the page names ("daily") as well as the unit names ("day").
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Day, nil
	case "weekly", "week":
		return Week, nil
	case "monthly", "month":
		return Month, nil
	case "yearly", "year":
		return Year, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Period is the half-open date interval [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date d lies in the period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// Last returns the last calendar date inside the period.
func (p Period) Last() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// Overlaps reports whether the period shares at least one date with the
// inclusive range [first, last].
func (p Period) Overlaps(first, last time.Time) bool {
	return p.Start.Before(last.AddDate(0, 0, 1)) && first.Before(p.End)
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + ".." + p.Last().Format(DateLayout)
}

// DateLayout is the calendar date format used across the API.
const DateLayout = "2006-01-02"
