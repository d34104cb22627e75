package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestNewIsAbsent(t *testing.T) {
	a := New("emp-1", day)
	assert.Equal(t, StatusAbsent, a.Status)
	assert.Nil(t, a.CheckInAt)
	assert.Nil(t, a.CheckOutAt)
}

func TestCheckInOnlyFromAbsent(t *testing.T) {
	a := New("emp-1", day)
	first := day.Add(8 * time.Hour)

	require.True(t, a.CheckIn(first))
	assert.Equal(t, StatusPresent, a.Status)
	assert.Equal(t, first, *a.CheckInAt)

	assert.False(t, a.CheckIn(first.Add(time.Hour)))
	assert.Equal(t, first, *a.CheckInAt)
	assert.Equal(t, StatusPresent, a.Status)

	leave := New("emp-1", day)
	leave.MarkLeave()
	assert.False(t, leave.CheckIn(first))
	assert.Equal(t, StatusLeave, leave.Status)
	assert.Nil(t, leave.CheckInAt)
}

func TestCheckOutRequiresPresent(t *testing.T) {
	a := New("emp-1", day)
	assert.False(t, a.CheckOut(day.Add(17*time.Hour)))
	assert.Equal(t, StatusAbsent, a.Status)
	assert.Nil(t, a.CheckOutAt)

	a.CheckIn(day.Add(8 * time.Hour))
	out := day.Add(17 * time.Hour)
	require.True(t, a.CheckOut(out))
	assert.Equal(t, out, *a.CheckOutAt)

	assert.False(t, a.CheckOut(out.Add(time.Hour)))
	assert.Equal(t, out, *a.CheckOutAt)
}

func TestMarkLeaveClearsTimes(t *testing.T) {
	a := New("emp-1", day)
	a.CheckIn(day.Add(8 * time.Hour))
	a.CheckOut(day.Add(17 * time.Hour))

	a.MarkLeave()
	assert.Equal(t, StatusLeave, a.Status)
	assert.Nil(t, a.CheckInAt)
	assert.Nil(t, a.CheckOutAt)
}

func TestParseReportDate(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, day, ParseReportDate("2024-06-10", today))
	assert.Equal(t, today, ParseReportDate("", today))
	assert.Equal(t, today, ParseReportDate("10/06/2024", today))
	assert.Equal(t, today, ParseReportDate("2024-02-30", today))
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPresent.IsValid())
	assert.True(t, StatusAbsent.IsValid())
	assert.True(t, StatusLeave.IsValid())
	assert.False(t, Status("HALF_DAY").IsValid())
}
