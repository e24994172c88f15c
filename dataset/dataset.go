package dataset

import (
	"time"

	"park-server/config"
	"park-server/models"
)

// Dataset is the immutable pair of historical and forecast records.
type Dataset struct {
	historical []models.Record
	forecast   []models.Record
	generation uint64
}

// New builds a Dataset from already loaded partitions.
func New(historical, forecast []models.Record) *Dataset {
	return &Dataset{historical: historical, forecast: forecast}
}

func (d *Dataset) Historical() []models.Record { return d.historical }

func (d *Dataset) Forecast() []models.Record { return d.forecast }

// Generation numbers the loads of a Store; it increases on every reload.
// Datasets built with New have generation 0.
func (d *Dataset) Generation() uint64 { return d.generation }

// Len returns the number of records across both partitions.
func (d *Dataset) Len() int { return len(d.historical) + len(d.forecast) }

// Combined concatenates historical then forecast records.
func (d *Dataset) Combined() []models.Record {
	out := make([]models.Record, 0, d.Len())
	out = append(out, d.historical...)
	return append(out, d.forecast...)
}

// InPeriod returns the records of both partitions dated inside p, in order.
func (d *Dataset) InPeriod(p models.Period) []models.Record {
	var out []models.Record
	for _, part := range [][]models.Record{d.historical, d.forecast} {
		for _, r := range part {
			if p.Contains(r.Date) {
				out = append(out, r)
			}
		}
	}
	return out
}

// SourceFor tells which partition is authoritative for a calendar date.
func SourceFor(d time.Time) models.Source {
	if d.After(config.HISTORICAL_END_DATE) {
		return models.SourceForecast
	}
	return models.SourceHistorical
}

// ForAttraction keeps the records of one attraction.
func ForAttraction(records []models.Record, attraction string) []models.Record {
	var out []models.Record
	for _, r := range records {
		if r.Attraction == attraction {
			out = append(out, r)
		}
	}
	return out
}
