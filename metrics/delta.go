package metrics

import (
	"math"

	"park-server/models"
)

// DeltaPercent returns the percent change from previous to current, or nil
// when there is no baseline (previous missing or zero).
func DeltaPercent(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	change := Round2((current - *previous) / math.Abs(*previous) * 100)
	return &change
}

// ComputeDeltas compares two snapshots. A nil previous yields all-nil deltas.
func ComputeDeltas(current models.KPISnapshot, previous *models.KPISnapshot) models.Deltas {
	if previous == nil {
		return models.Deltas{}
	}
	prevAttendance := float64(previous.TotalAttendance)
	return models.Deltas{
		Attendance:          DeltaPercent(float64(current.TotalAttendance), &prevAttendance),
		AvgWait:             DeltaPercent(current.AvgWait, &previous.AvgWait),
		PeakWait:            DeltaPercent(current.PeakWait, &previous.PeakWait),
		CapacityUtilization: DeltaPercent(current.CapacityUtilization, &previous.CapacityUtilization),
	}
}
