package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-server/db"
	"park-server/models"
)

func TestRedisReportDAO_SetAndGet(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisReportDAO(mockClient)

	report := &models.DashboardReport{
		Status:      models.StatusAvailable,
		Granularity: models.Day,
		Reference:   "2022-06-15",
		Attraction:  "Roller Coaster",
		KPIs:        &models.KPISnapshot{TotalAttendance: 500, AvgWait: 12.5, BusyLevel: models.BusyLow},
	}
	require.NoError(t, dao.SetReport(3, report, "Roller Coaster"))

	stored, err := mockClient.Get("dashboard_report_v1:3:daily:2022-06-15:Roller+Coaster")
	require.NoError(t, err)
	assert.Contains(t, stored, `"total_attendance":500`)

	got, err := dao.GetReport(3, models.Day, "2022-06-15", "Roller Coaster")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.Attraction, got.Attraction)
	assert.Equal(t, report.KPIs, got.KPIs)

	other, err := dao.GetReport(4, models.Day, "2022-06-15", "Roller Coaster")
	require.NoError(t, err)
	assert.Nil(t, other, "reports of another dataset generation are not shared")
}

func TestRedisReportDAO_GetReport_Miss(t *testing.T) {
	dao := NewRedisReportDAO(db.NewMockRedisClient(context.Background()))

	got, err := dao.GetReport(1, models.Week, "2022-07-04", "")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisReportDAO_GetReport_Corrupt(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisReportDAO(mockClient)
	require.NoError(t, mockClient.Set(ReportKey(1, models.Year, "2019-01-01", ""), "{not json"))

	_, err := dao.GetReport(1, models.Year, "2019-01-01", "")
	assert.Error(t, err)
}

func TestRedisReportDAO_PurgeReports(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisReportDAO(mockClient)

	for _, ref := range []string{"2022-06-15", "2022-06-16"} {
		require.NoError(t, dao.SetReport(1, &models.DashboardReport{Granularity: models.Day, Reference: ref}, ""))
	}
	require.NoError(t, mockClient.Set("unrelated", "keep"))

	n, err := dao.PurgeReports()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := dao.ListCachedReportKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = mockClient.Get("unrelated")
	assert.NoError(t, err)
}
