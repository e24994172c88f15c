// Package recommend suggests how many ride units to run in each 3-hour
// segment of an operating day.
package recommend

import (
	"fmt"
	"math"
	"strconv"

	"park-server/config"
	"park-server/models"
)

// Segment is a half-open hour window [Start, End).
type Segment struct {
	Start int
	End   int
}

// Label renders the segment as "09:00-12:00".
func (s Segment) Label() string {
	return fmt.Sprintf("%02d:00-%02d:00", s.Start, s.End)
}

// DaySegments are the fixed operating windows between 09:00 and 21:00.
var DaySegments = []Segment{{9, 12}, {12, 15}, {15, 18}, {18, 21}}

// RecommendUnits evaluates every segment for one attraction's records of a
// single day and flags the busiest one.
func RecommendUnits(records []models.Record) models.SegmentReport {
	report := models.SegmentReport{Segments: make([]models.SegmentResult, 0, len(DaySegments))}

	maxWait := 0
	busiest := -1
	for _, seg := range DaySegments {
		result := evaluate(seg, records)
		report.Segments = append(report.Segments, result)
		if result.AvgWait > maxWait {
			maxWait = result.AvgWait
			busiest = len(report.Segments) - 1
		}
	}

	if busiest >= 0 {
		b := report.Segments[busiest]
		report.Busiest = &b
		if maxWait > config.SEGMENT_SUGGESTION_WAIT_MINUTES {
			report.Suggestion = fmt.Sprintf(
				"The busiest time range is %s with an average wait of %d minutes. Consider deploying food/merchandise carts to improve guest experience.",
				b.Label, b.AvgWait)
		}
	}
	return report
}

func evaluate(seg Segment, records []models.Record) models.SegmentResult {
	result := models.SegmentResult{
		Label:            seg.Label(),
		StartHour:        seg.Start,
		EndHour:          seg.End,
		RecommendedUnits: models.ClosedOrNoData,
	}

	var rows []models.Record
	for _, r := range records {
		if r.Hour >= seg.Start && r.Hour < seg.End {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return result
	}

	var waitSum float64
	guests := 0
	for _, r := range rows {
		guests += r.GuestsCarried
		waitSum += r.WaitTimeMax
	}
	result.GuestsCarried = guests
	result.AvgWait = int(math.RoundToEven(waitSum / float64(len(rows))))

	// Capacity and unit limit are constant within a segment for one attraction.
	capacity := rows[0].Capacity
	if capacity <= 0 {
		return result
	}
	result.RecommendedUnits = strconv.Itoa(IdealUnits(guests, capacity, rows[0].MaxUnits))
	return result
}

// IdealUnits is ceil(guests/capacity) clamped to maxUnits. A maxUnits of 0
// means the limit is unknown and no clamp applies.
func IdealUnits(guests, capacity, maxUnits int) int {
	units := int(math.Ceil(float64(guests) / float64(capacity)))
	if maxUnits > 0 && units > maxUnits {
		units = maxUnits
	}
	return units
}
