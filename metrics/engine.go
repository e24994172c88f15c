// Package metrics computes the dashboard KPIs for one attraction over one
// period. The four granularities share one engine and differ only in the
// peak-hour rule and peak-wait rounding.
package metrics

import (
	"errors"
	"math"
	"time"

	"park-server/config"
	"park-server/models"
)

// ErrNoRecords is returned when KPIs are requested for an empty record set.
var ErrNoRecords = errors.New("no records for selection")

// Strategy holds the per-granularity conventions.
type Strategy struct {
	// RoundPeakWait rounds the peak wait to 2 decimals.
	RoundPeakWait bool
	// PeakHourByMean picks the hour with the highest mean wait instead of the
	// hour of the single highest row.
	PeakHourByMean bool
}

// StrategyFor returns the conventions of a granularity.
func StrategyFor(g models.Granularity) Strategy {
	switch g {
	case models.Day:
		return Strategy{RoundPeakWait: true, PeakHourByMean: true}
	case models.Month:
		return Strategy{RoundPeakWait: true}
	default:
		return Strategy{}
	}
}

// ComputeKPIs summarises a non-empty record set of one attraction.
func ComputeKPIs(records []models.Record, g models.Granularity) (models.KPISnapshot, error) {
	if len(records) == 0 {
		return models.KPISnapshot{}, ErrNoRecords
	}
	strategy := StrategyFor(g)

	var waitSum, utilSum float64
	peak := records[0].WaitTimeMax
	peakHour := records[0].Hour
	for _, r := range records {
		waitSum += r.WaitTimeMax
		utilSum += r.CapacityUtilization
		if r.WaitTimeMax > peak {
			peak = r.WaitTimeMax
			peakHour = r.Hour
		}
	}
	n := float64(len(records))

	snap := models.KPISnapshot{
		TotalAttendance:     TotalAttendance(records),
		AvgWait:             Round2(waitSum / n),
		PeakWait:            peak,
		PeakHour:            peakHour,
		CapacityUtilization: Round2(utilSum / n),
	}
	if strategy.RoundPeakWait {
		snap.PeakWait = Round2(peak)
	}
	if strategy.PeakHourByMean {
		snap.PeakHour = busiestHourByMean(records)
	}
	// Rounding the mean may push it past an unrounded peak.
	if snap.AvgWait > snap.PeakWait {
		snap.AvgWait = snap.PeakWait
	}
	snap.BusyLevel = ClassifyBusy(snap.AvgWait, snap.PeakWait)
	return snap, nil
}

// TotalAttendance sums the first attendance value seen for each date.
// Attendance is recorded once per day, so hourly rows must not be summed.
func TotalAttendance(records []models.Record) int {
	seen := make(map[time.Time]struct{})
	total := 0
	for _, r := range records {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		total += r.Attendance
	}
	return total
}

// busiestHourByMean returns the hour with the highest mean wait; ties go to
// the earliest hour.
func busiestHourByMean(records []models.Record) int {
	means := MeanWaitByHour(records)
	best, bestMean := -1, math.Inf(-1)
	for h := 0; h < 24; h++ {
		m, ok := means[h]
		if !ok {
			continue
		}
		if m > bestMean {
			best, bestMean = h, m
		}
	}
	if best < 0 {
		return records[0].Hour
	}
	return best
}

// MeanWaitByHour groups rows by hour and averages their wait.
func MeanWaitByHour(records []models.Record) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range records {
		sums[r.Hour] += r.WaitTimeMax
		counts[r.Hour]++
	}
	means := make(map[int]float64, len(sums))
	for h, s := range sums {
		means[h] = s / float64(counts[h])
	}
	return means
}

// ClassifyBusy maps average and peak wait to a busy level.
func ClassifyBusy(avgWait, peakWait float64) models.BusyLevel {
	switch {
	case avgWait < config.BUSY_LOW_AVG_WAIT && peakWait < config.BUSY_LOW_PEAK_WAIT:
		return models.BusyLow
	case avgWait < config.BUSY_MEDIUM_AVG_WAIT && peakWait < config.BUSY_MEDIUM_PEAK_WAIT:
		return models.BusyMedium
	default:
		return models.BusyHigh
	}
}

// Round2 rounds to 2 decimals, halves to even like the segment averages.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
