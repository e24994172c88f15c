package models

// BusyLevel is the three-tier crowding label.
type BusyLevel string

const (
	BusyLow    BusyLevel = "low"
	BusyMedium BusyLevel = "medium"
	BusyHigh   BusyLevel = "high"
)

// KPISnapshot summarises one attraction over one period.
type KPISnapshot struct {
	TotalAttendance     int       `json:"total_attendance"`
	AvgWait             float64   `json:"avg_wait"`
	PeakWait            float64   `json:"peak_wait"`
	PeakHour            int       `json:"peak_hour"`
	CapacityUtilization float64   `json:"capacity_utilization"`
	BusyLevel           BusyLevel `json:"busy_level"`
}

// Deltas holds period-over-period percent changes. A nil field means no
// comparison is available.
type Deltas struct {
	Attendance          *float64 `json:"attendance"`
	AvgWait             *float64 `json:"avg_wait"`
	PeakWait            *float64 `json:"peak_wait"`
	CapacityUtilization *float64 `json:"capacity_utilization"`
}

// TrendPoint is one point of the wait-time trend line.
type TrendPoint struct {
	Label     string  `json:"label"`
	AvgWait   float64 `json:"avg_wait"`
	Reference float64 `json:"reference,omitempty"`
}
