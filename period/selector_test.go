package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-server/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentAndPrevious(t *testing.T) {
	tests := []struct {
		name          string
		reference     time.Time
		granularity   models.Granularity
		currentFirst  time.Time
		currentLast   time.Time
		previousFirst time.Time
		previousLast  time.Time
	}{
		{
			name:          "day",
			reference:     day(2022, time.March, 1),
			granularity:   models.Day,
			currentFirst:  day(2022, time.March, 1),
			currentLast:   day(2022, time.March, 1),
			previousFirst: day(2022, time.February, 28),
			previousLast:  day(2022, time.February, 28),
		},
		{
			name:          "week starting on monday",
			reference:     day(2022, time.July, 4),
			granularity:   models.Week,
			currentFirst:  day(2022, time.July, 4),
			currentLast:   day(2022, time.July, 10),
			previousFirst: day(2022, time.June, 27),
			previousLast:  day(2022, time.July, 3),
		},
		{
			name:          "week from sunday",
			reference:     day(2022, time.July, 10),
			granularity:   models.Week,
			currentFirst:  day(2022, time.July, 4),
			currentLast:   day(2022, time.July, 10),
			previousFirst: day(2022, time.June, 27),
			previousLast:  day(2022, time.July, 3),
		},
		{
			name:          "month uses calendar months",
			reference:     day(2022, time.March, 31),
			granularity:   models.Month,
			currentFirst:  day(2022, time.March, 1),
			currentLast:   day(2022, time.March, 31),
			previousFirst: day(2022, time.February, 1),
			previousLast:  day(2022, time.February, 28),
		},
		{
			name:          "month across a year boundary",
			reference:     day(2022, time.January, 15),
			granularity:   models.Month,
			currentFirst:  day(2022, time.January, 1),
			currentLast:   day(2022, time.January, 31),
			previousFirst: day(2021, time.December, 1),
			previousLast:  day(2021, time.December, 31),
		},
		{
			name:          "year",
			reference:     day(2019, time.August, 8),
			granularity:   models.Year,
			currentFirst:  day(2019, time.January, 1),
			currentLast:   day(2019, time.December, 31),
			previousFirst: day(2018, time.January, 1),
			previousLast:  day(2018, time.December, 31),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			current, previous, err := CurrentAndPrevious(test.reference, test.granularity)
			require.NoError(t, err)

			assert.Equal(t, test.currentFirst, current.Start)
			assert.Equal(t, test.currentLast, current.Last())
			assert.Equal(t, test.previousFirst, previous.Start)
			assert.Equal(t, test.previousLast, previous.Last())
		})
	}
}

func TestCurrent_IgnoresClock(t *testing.T) {
	p, err := Current(time.Date(2022, time.July, 4, 17, 30, 0, 0, time.UTC), models.Day)
	require.NoError(t, err)
	assert.Equal(t, day(2022, time.July, 4), p.Start)
	assert.True(t, p.Contains(day(2022, time.July, 4)))
	assert.False(t, p.Contains(day(2022, time.July, 5)))
}

func TestCurrent_UnknownGranularity(t *testing.T) {
	_, err := Current(day(2022, time.July, 4), models.Granularity("hourly"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		reference   time.Time
		granularity models.Granularity
		want        Availability
	}{
		{"inside blackout", day(2020, time.June, 1), models.Day, Blackout},
		{"inside blackout for a year view", day(2020, time.June, 1), models.Year, Blackout},
		{"blackout first day", day(2020, time.March, 14), models.Day, Blackout},
		{"blackout last day", day(2021, time.June, 14), models.Day, Blackout},
		{"day after blackout", day(2021, time.June, 15), models.Day, Available},
		{"before data", day(2018, time.May, 31), models.Day, OutOfRange},
		{"year overlapping start", day(2018, time.January, 1), models.Year, Available},
		{"last forecast day", day(2022, time.August, 2), models.Day, Available},
		{"after forecast", day(2022, time.August, 3), models.Day, OutOfRange},
		{"week overlapping forecast end", day(2022, time.August, 3), models.Week, Available},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Classify(test.reference, test.granularity))
		})
	}
}

func TestComparable(t *testing.T) {
	prev, err := Previous(models.Period{Start: day(2018, time.June, 1), End: day(2018, time.June, 2)}, models.Day)
	require.NoError(t, err)
	assert.False(t, Comparable(prev))

	prevMonth, err := Previous(models.Period{Start: day(2018, time.July, 1), End: day(2018, time.August, 1)}, models.Month)
	require.NoError(t, err)
	assert.True(t, Comparable(prevMonth))
}
