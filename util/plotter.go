package util

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"park-server/models"
)

// ErrNoTrend is returned when a report carries no trend points to plot.
var ErrNoTrend = errors.New("report has no trend to plot")

// RenderTrendChart writes an HTML page with the wait-time trend line of an
// available report. Daily reports also get the flat reference line.
func RenderTrendChart(w io.Writer, report *models.DashboardReport) error {
	if report == nil || report.Status != models.StatusAvailable || len(report.Trend) == 0 {
		return ErrNoTrend
	}

	labels := make([]string, 0, len(report.Trend))
	waits := make([]opts.LineData, 0, len(report.Trend))
	for _, p := range report.Trend {
		labels = append(labels, p.Label)
		waits = append(waits, opts.LineData{Value: p.AvgWait})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Wait time trend",
			Width:     "900px",
			Height:    "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s - %s wait time", report.Attraction, report.Granularity),
			Subtitle: report.Current.String(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "minutes"}),
	)

	line.SetXAxis(labels).AddSeries("Avg wait", waits)

	if report.Granularity == models.Day {
		reference := make([]opts.LineData, 0, len(report.Trend))
		for _, p := range report.Trend {
			reference = append(reference, opts.LineData{Value: p.Reference})
		}
		line.AddSeries("Daily average", reference)
	}

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}
	return nil
}
