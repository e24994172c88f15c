package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"park-server/models"
	"park-server/util"
)

var (
	reportGranularity string
	reportDate        string
	reportAttraction  string
	reportChartPath   string
	reportXLSXPath    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print one dashboard report as JSON",
	Long: `Report computes a dashboard for one period and attraction without starting the server.

Flags:
  --granularity  daily, weekly, monthly or yearly
  --date         reference date (YYYY-MM-DD)
  --attraction   attraction name (defaults to Roller Coaster when present)
  --chart        also write the trend chart HTML to this path
  --xlsx         also write the daily recommendations workbook to this path`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	g, err := models.ParseGranularity(reportGranularity)
	if err != nil {
		return err
	}
	reference, err := time.Parse(models.DateLayout, reportDate)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", reportDate, err)
	}

	container, err := buildContainer()
	if err != nil {
		return err
	}
	report, err := container.DashboardService.BuildReport(cmd.Context(), g, reference, reportAttraction)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if reportChartPath != "" {
		if err := writeFile(reportChartPath, func(f *os.File) error { return util.RenderTrendChart(f, report) }); err != nil {
			return err
		}
	}
	if reportXLSXPath != "" {
		if err := writeFile(reportXLSXPath, func(f *os.File) error { return util.WriteRecommendationsXLSX(f, report) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportGranularity, "granularity", string(models.Day), "daily, weekly, monthly or yearly")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "reference date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportAttraction, "attraction", "", "attraction name")
	reportCmd.Flags().StringVar(&reportChartPath, "chart", "", "write the trend chart HTML to this path")
	reportCmd.Flags().StringVar(&reportXLSXPath, "xlsx", "", "write the recommendations workbook to this path")
	_ = reportCmd.MarkFlagRequired("date")
	RootCmd.AddCommand(reportCmd)
}
