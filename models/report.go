package models

// Status tags the outcome of a dashboard query. Everything except
// StatusAvailable is a soft condition the client renders as a message.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusNoData     Status = "no_data"
	StatusBlackout   Status = "blackout"
	StatusOutOfRange Status = "out_of_range"
)

// DashboardReport is everything one dashboard page renders.
type DashboardReport struct {
	Status       Status         `json:"status"`
	Message      string         `json:"message,omitempty"`
	Granularity  Granularity    `json:"granularity"`
	Reference    string         `json:"reference_date"`
	Current      Period         `json:"current_period"`
	Previous     Period         `json:"previous_period"`
	Attractions  []string       `json:"attractions,omitempty"`
	Attraction   string         `json:"attraction,omitempty"`
	Source       Source         `json:"source,omitempty"`
	KPIs         *KPISnapshot   `json:"kpis,omitempty"`
	PreviousKPIs *KPISnapshot   `json:"previous_kpis,omitempty"`
	Deltas       Deltas         `json:"deltas"`
	Trend        []TrendPoint   `json:"trend,omitempty"`
	Segments     *SegmentReport `json:"segments,omitempty"`
}
