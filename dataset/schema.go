package dataset

import (
	"time"

	"park-server/config"
	"park-server/models"
)

// Canonical column names every source is renamed to.
const (
	ColDate          = "date"
	ColAttraction    = "attraction"
	ColWaitTimeMax   = "wait_time_max"
	ColAttendance    = "attendance"
	ColHour          = "hour"
	ColTimeSlot      = "time_slot"
	ColGuestsCarried = "guests_carried"
	ColCapacity      = "capacity"
	ColMaxUnits      = "max_units"
)

// Schema maps raw source columns to canonical names.
type Schema struct {
	Source  models.Source
	Columns map[string]string
}

// HistoricalSchema describes the park's cleaned historical export.
var HistoricalSchema = Schema{
	Source: models.SourceHistorical,
	Columns: map[string]string{
		"WORK_DATE":                ColDate,
		"ENTITY_DESCRIPTION_SHORT": ColAttraction,
		"WAIT_TIME_MAX":            ColWaitTimeMax,
		"attendance":               ColAttendance,
		"DEB_TIME_HOUR":            ColHour,
		"DEB_TIME_ONLY":            ColTimeSlot,
		"GUEST_CARRIED":            ColGuestsCarried,
		"CAPACITY":                 ColCapacity,
		"NB_MAX_UNIT":              ColMaxUnits,
	},
}

// ForecastSchema describes the 7-day forecast file. Only the first three
// columns are mandatory.
var ForecastSchema = Schema{
	Source: models.SourceForecast,
	Columns: map[string]string{
		"Date":          ColDate,
		"Attraction":    ColAttraction,
		"Wait_time_max": ColWaitTimeMax,
		"GUEST_CARRIED": ColGuestsCarried,
		"CAPACITY":      ColCapacity,
	},
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	First time.Time
	Last  time.Time
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.First) && !d.After(r.Last)
}

// ValidRange is the set of dates a source may contribute.
type ValidRange struct {
	Keep    DateRange
	Exclude []DateRange
}

// Contains reports whether d is kept and not excluded.
func (v ValidRange) Contains(d time.Time) bool {
	if !v.Keep.Contains(d) {
		return false
	}
	for _, ex := range v.Exclude {
		if ex.Contains(d) {
			return false
		}
	}
	return true
}

// Blackout is the window the park was closed.
func Blackout() DateRange {
	return DateRange{First: config.BLACKOUT_START_DATE, Last: config.BLACKOUT_END_DATE}
}

// HistoricalRange is the validity window of the historical source.
func HistoricalRange() ValidRange {
	return ValidRange{
		Keep:    DateRange{First: config.HISTORICAL_START_DATE, Last: config.HISTORICAL_END_DATE},
		Exclude: []DateRange{Blackout()},
	}
}

// ForecastRange is the validity window of the forecast source.
func ForecastRange() ValidRange {
	return ValidRange{
		Keep: DateRange{First: config.FORECAST_START_DATE, Last: config.FORECAST_END_DATE},
	}
}

// CombinedWindow spans both sources.
func CombinedWindow() DateRange {
	return DateRange{First: config.HISTORICAL_START_DATE, Last: config.FORECAST_END_DATE}
}
