package metrics

import (
	"fmt"
	"sort"
	"time"

	"park-server/models"
)

// Trend builds the wait-time line rendered under the scorecards.
func Trend(records []models.Record, g models.Granularity) []models.TrendPoint {
	if len(records) == 0 {
		return nil
	}
	switch g {
	case models.Day:
		return hourlyTrend(records)
	case models.Year:
		return monthlyTrend(records)
	default:
		return dailyTrend(records)
	}
}

// hourlyTrend averages wait per hour; Reference carries the mean of the
// hourly means.
func hourlyTrend(records []models.Record) []models.TrendPoint {
	means := MeanWaitByHour(records)
	hours := make([]int, 0, len(means))
	var total float64
	for h, m := range means {
		hours = append(hours, h)
		total += m
	}
	sort.Ints(hours)
	reference := total / float64(len(hours))

	points := make([]models.TrendPoint, 0, len(hours))
	for _, h := range hours {
		points = append(points, models.TrendPoint{
			Label:     fmt.Sprintf("%02d:00", h),
			AvgWait:   means[h],
			Reference: reference,
		})
	}
	return points
}

func dailyTrend(records []models.Record) []models.TrendPoint {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, r := range records {
		sums[r.Date] += r.WaitTimeMax
		counts[r.Date]++
	}
	dates := make([]time.Time, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]models.TrendPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, models.TrendPoint{
			Label:   d.Format(models.DateLayout),
			AvgWait: sums[d] / float64(counts[d]),
		})
	}
	return points
}

func monthlyTrend(records []models.Record) []models.TrendPoint {
	var sums [13]float64
	var counts [13]int
	for _, r := range records {
		m := r.Date.Month()
		sums[m] += r.WaitTimeMax
		counts[m]++
	}
	var points []models.TrendPoint
	for m := time.January; m <= time.December; m++ {
		if counts[m] == 0 {
			continue
		}
		points = append(points, models.TrendPoint{
			Label:   m.String(),
			AvgWait: sums[m] / float64(counts[m]),
		})
	}
	return points
}
