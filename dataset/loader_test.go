package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"park-server/models"
)

const historicalHeader = "WORK_DATE,ENTITY_DESCRIPTION_SHORT,WAIT_TIME_MAX,attendance,DEB_TIME_HOUR,DEB_TIME_ONLY,GUEST_CARRIED,CAPACITY,NB_MAX_UNIT\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoad_HistoricalRenamesAndFillsDefaults(t *testing.T) {
	content := historicalHeader +
		"2022-06-15,Roller Coaster,45,12000,10,10:00,300,150,4\n" +
		"2022-06-15,Roller Coaster,,,11,11:00,,,4\n"
	path := writeTemp(t, "hist.csv", content)

	records, err := Load(path, HistoricalSchema, HistoricalRange())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Roller Coaster", first.Attraction)
	assert.Equal(t, day(2022, time.June, 15), first.Date)
	assert.Equal(t, 45.0, first.WaitTimeMax)
	assert.Equal(t, 12000, first.Attendance)
	assert.Equal(t, 10, first.Hour)
	assert.Equal(t, "10:00", first.TimeSlot)
	assert.Equal(t, 300, first.GuestsCarried)
	assert.Equal(t, 150, first.Capacity)
	assert.Equal(t, 4, first.MaxUnits)
	assert.InDelta(t, 200.0, first.CapacityUtilization, 1e-9, "utilization is not clamped to 100")
	assert.Equal(t, models.SourceHistorical, first.Source)

	second := records[1]
	assert.Equal(t, 0.0, second.WaitTimeMax)
	assert.Equal(t, 0, second.Attendance)
	assert.Equal(t, 0, second.GuestsCarried)
	assert.Equal(t, 1, second.Capacity)
	assert.Equal(t, 0.0, second.CapacityUtilization)
}

func TestLoad_SkipsMalformedAndUnparseableRows(t *testing.T) {
	content := historicalHeader +
		"2022-06-15,Roller Coaster,45,12000,10,10:00,300,150,4\n" +
		"2022-06-15,Roller Coaster,45\n" +
		"not-a-date,Roller Coaster,45,12000,10,10:00,300,150,4\n" +
		"2022-06-15,,45,12000,10,10:00,300,150,4\n"
	path := writeTemp(t, "hist.csv", content)

	records, err := Load(path, HistoricalSchema, HistoricalRange())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoad_RetainsValidRangeOnly(t *testing.T) {
	content := historicalHeader +
		"2018-05-31,Roller Coaster,10,1,10,10:00,1,1,1\n" +
		"2018-06-01,Roller Coaster,10,1,10,10:00,1,1,1\n" +
		"2020-06-01,Roller Coaster,10,1,10,10:00,1,1,1\n" +
		"2022-07-26,Roller Coaster,10,1,10,10:00,1,1,1\n" +
		"2022-07-27,Roller Coaster,10,1,10,10:00,1,1,1\n"
	path := writeTemp(t, "hist.csv", content)

	records, err := Load(path, HistoricalSchema, HistoricalRange())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, day(2018, time.June, 1), records[0].Date)
	assert.Equal(t, day(2022, time.July, 26), records[1].Date)
}

func TestLoad_ForecastDefaultsOptionalColumns(t *testing.T) {
	content := "Date,Attraction,Wait_time_max\n" +
		"2022-07-27,Roller Coaster,35\n" +
		"2022-08-03,Roller Coaster,35\n"
	path := writeTemp(t, "forecast.csv", content)

	records, err := Load(path, ForecastSchema, ForecastRange())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, models.SourceForecast, r.Source)
	assert.Equal(t, 0, r.Hour)
	assert.Equal(t, 0, r.Attendance)
	assert.Equal(t, 0, r.GuestsCarried)
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, 0, r.MaxUnits)
}

func TestLoad_HourFromTimestamp(t *testing.T) {
	content := "Date,Attraction,Wait_time_max\n2022-07-28 14:15:00,Roller Coaster,35\n"
	records, err := LoadReader(strings.NewReader(content), ForecastSchema, ForecastRange())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 14, records[0].Hour)
	assert.Equal(t, day(2022, time.July, 28), records[0].Date)
}

func TestLoad_SourceNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), HistoricalSchema, HistoricalRange())
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestLoad_ParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing required column", "foo,bar\n1,2\n"},
		{"header only with wrong columns", "foo,bar\n"},
		{"forecast header on historical schema", "Date,Attraction,Wait_time_max\n"},
		{"binary content", workbookBytes(t)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(test.content), HistoricalSchema, HistoricalRange())
			assert.True(t, errors.Is(err, ErrParseFailure), "got %v", err)
		})
	}
}

// workbookBytes returns an xlsx file, the usual wrong upload for a CSV source.
func workbookBytes(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "WORK_DATE")
	f.SetCellValue("Sheet1", "B1", "2022-06-15")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.String()
}

func TestLoad_BinaryFileOnDisk(t *testing.T) {
	path := writeTemp(t, "merged_final_2.csv", workbookBytes(t))
	records, err := Load(path, HistoricalSchema, HistoricalRange())
	assert.ErrorIs(t, err, ErrParseFailure)
	assert.Nil(t, records)
}

func TestLoad_HeaderOnlyIsEmpty(t *testing.T) {
	records, err := LoadReader(strings.NewReader(historicalHeader), HistoricalSchema, HistoricalRange())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestValidRange_Blackout(t *testing.T) {
	r := HistoricalRange()
	assert.False(t, r.Contains(day(2020, time.March, 14)))
	assert.False(t, r.Contains(day(2021, time.June, 14)))
	assert.True(t, r.Contains(day(2020, time.March, 13)))
	assert.True(t, r.Contains(day(2021, time.June, 15)))
}
