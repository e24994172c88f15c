package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"park-server/config"
	"park-server/dao/redis"
	"park-server/dataset"
	"park-server/metrics"
	"park-server/models"
	"park-server/period"
	"park-server/recommend"
)

// DatasetProvider hands out the current Dataset.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*dataset.Dataset, error)
}

// DashboardService assembles dashboard reports from the loaded dataset.
type DashboardService struct {
	datasets  DatasetProvider
	reportDao *redis.RedisReportDAO
}

// NewDashboardService constructs a DashboardService. reportDao may be nil to
// disable report caching.
func NewDashboardService(datasets DatasetProvider, reportDao *redis.RedisReportDAO) *DashboardService {
	return &DashboardService{
		datasets:  datasets,
		reportDao: reportDao,
	}
}

// Attractions lists the attractions with data in the period containing reference.
func (s *DashboardService) Attractions(ctx context.Context, g models.Granularity, reference time.Time) (models.Status, []string, error) {
	switch period.Classify(reference, g) {
	case period.Blackout:
		return models.StatusBlackout, nil, nil
	case period.OutOfRange:
		return models.StatusOutOfRange, nil, nil
	}
	current, err := period.Current(reference, g)
	if err != nil {
		return "", nil, err
	}
	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return "", nil, err
	}
	names := metrics.AttractionsInPeriod(ds.InPeriod(current))
	if len(names) == 0 {
		return models.StatusNoData, nil, nil
	}
	return models.StatusAvailable, names, nil
}

// BuildReport computes the report for one granularity, reference date and
// attraction. An empty attraction selects the default one. Soft conditions
// come back as a tagged report; only dataset failures are returned as errors.
func (s *DashboardService) BuildReport(ctx context.Context, g models.Granularity, reference time.Time, attraction string) (*models.DashboardReport, error) {
	reference = period.Truncate(reference)
	current, previous, err := period.CurrentAndPrevious(reference, g)
	if err != nil {
		return nil, err
	}

	report := &models.DashboardReport{
		Granularity: g,
		Reference:   reference.Format(models.DateLayout),
		Current:     current,
		Previous:    previous,
	}

	switch period.Classify(reference, g) {
	case period.Blackout:
		report.Status = models.StatusBlackout
		report.Message = fmt.Sprintf("The park was closed from %s to %s. No data available.",
			config.BLACKOUT_START_DATE.Format(models.DateLayout), config.BLACKOUT_END_DATE.Format(models.DateLayout))
		return report, nil
	case period.OutOfRange:
		report.Status = models.StatusOutOfRange
		report.Message = fmt.Sprintf("Selected date is out of range (%s to %s).",
			config.HISTORICAL_START_DATE.Format(models.DateLayout), config.FORECAST_END_DATE.Format(models.DateLayout))
		return report, nil
	}

	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	if cached := s.cachedReport(ds.Generation(), g, report.Reference, attraction); cached != nil {
		return cached, nil
	}

	inPeriod := ds.InPeriod(current)
	report.Attractions = metrics.AttractionsInPeriod(inPeriod)
	if len(report.Attractions) == 0 {
		report.Status = models.StatusNoData
		report.Message = "No data for the selected period."
		s.cacheReport(ds.Generation(), report, attraction)
		return report, nil
	}

	chosen := attraction
	if chosen == "" {
		chosen = metrics.DefaultAttraction(report.Attractions, config.DEFAULT_ATTRACTION)
	}
	report.Attraction = chosen

	selected := dataset.ForAttraction(inPeriod, chosen)
	kpis, err := metrics.ComputeKPIs(selected, g)
	if err != nil {
		report.Status = models.StatusNoData
		report.Message = "No data for the selected period/attraction."
		s.cacheReport(ds.Generation(), report, attraction)
		return report, nil
	}

	report.Status = models.StatusAvailable
	report.KPIs = &kpis
	report.Source = sourceOf(selected)
	report.PreviousKPIs = s.previousKPIs(ds, previous, g, chosen)
	report.Deltas = metrics.ComputeDeltas(kpis, report.PreviousKPIs)
	report.Trend = metrics.Trend(selected, g)
	if g == models.Day {
		segments := recommend.RecommendUnits(selected)
		report.Segments = &segments
	}

	s.cacheReport(ds.Generation(), report, attraction)
	return report, nil
}

func (s *DashboardService) previousKPIs(ds *dataset.Dataset, previous models.Period, g models.Granularity, attraction string) *models.KPISnapshot {
	if !period.Comparable(previous) {
		return nil
	}
	records := dataset.ForAttraction(ds.InPeriod(previous), attraction)
	kpis, err := metrics.ComputeKPIs(records, g)
	if err != nil {
		return nil
	}
	return &kpis
}

func sourceOf(records []models.Record) models.Source {
	for _, r := range records {
		if r.Source == models.SourceForecast {
			return models.SourceForecast
		}
	}
	return models.SourceHistorical
}

func (s *DashboardService) cachedReport(generation uint64, g models.Granularity, reference, attraction string) *models.DashboardReport {
	if s.reportDao == nil {
		return nil
	}
	r, err := s.reportDao.GetReport(generation, g, reference, attraction)
	if err != nil {
		log.Printf("[DashboardService] Report cache read failed: %v", err)
		return nil
	}
	return r
}

// cacheReport stores r under the generation of the dataset it was built
// from, so a report finished after a reload never shadows the new data.
func (s *DashboardService) cacheReport(generation uint64, r *models.DashboardReport, attraction string) {
	if s.reportDao == nil {
		return
	}
	if err := s.reportDao.SetReport(generation, r, attraction); err != nil {
		log.Printf("[DashboardService] Report cache write failed: %v", err)
	}
}
