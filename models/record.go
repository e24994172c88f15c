package models

import "time"

// Source tells which partition a record was loaded from.
type Source string

const (
	SourceHistorical Source = "historical"
	SourceForecast   Source = "forecast"
)

// Record is one observation row for an attraction.
type Record struct {
	Attraction          string    `json:"attraction"`
	Date                time.Time `json:"date"`
	Hour                int       `json:"hour"`
	TimeSlot            string    `json:"time_slot,omitempty"`
	WaitTimeMax         float64   `json:"wait_time_max"`
	Attendance          int       `json:"attendance"`
	GuestsCarried       int       `json:"guests_carried"`
	Capacity            int       `json:"capacity"`
	MaxUnits            int       `json:"max_units,omitempty"`
	CapacityUtilization float64   `json:"capacity_utilization"`
	Source              Source    `json:"source"`
}
