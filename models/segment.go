package models

// ClosedOrNoData marks a segment with nothing to recommend.
const ClosedOrNoData = "closed/no-data"

// SegmentResult is the unit recommendation for one 3-hour window.
type SegmentResult struct {
	Label            string `json:"label"`
	StartHour        int    `json:"start_hour"`
	EndHour          int    `json:"end_hour"`
	RecommendedUnits string `json:"recommended_units"`
	AvgWait          int    `json:"avg_wait"`
	GuestsCarried    int    `json:"guests_carried"`
}

// SegmentReport is the ordered segment list plus the busiest-segment flag.
type SegmentReport struct {
	Segments   []SegmentResult `json:"segments"`
	Busiest    *SegmentResult  `json:"busiest,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}
