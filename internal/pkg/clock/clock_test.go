package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// 23:30 UTC on the 9th is already the 10th in UTC+7.
	at := time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC).In(jakarta)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), DateOf(at))
}

func TestDaysInclusive(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	days := Days(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, start, days[0])
	assert.Equal(t, start.AddDate(0, 0, 1), days[1])
	assert.Equal(t, end, days[2])
}

func TestDaysSingleDay(t *testing.T) {
	d := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{d}, Days(d, d))
}

func TestDaysAcrossMonthBoundary(t *testing.T) {
	days := Days(
		time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, days, 4)
	assert.Equal(t, time.Month(2), days[3].Month())
	assert.Equal(t, 2, days[3].Day())
}

func TestDaysReversed(t *testing.T) {
	start := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, Days(start, end))
}

func TestFixedClock(t *testing.T) {
	c := &Fixed{At: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), c.Today())

	c.Advance(20 * time.Hour)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), c.Today())
}
