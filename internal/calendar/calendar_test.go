package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCalendar(t *testing.T, rooms int) *Calendar {
	t.Helper()
	cal, err := New(rooms, 365, date(2025, time.January, 1))
	require.NoError(t, err)
	return cal
}

func TestNew_AllFree(t *testing.T) {
	cal := newTestCalendar(t, 3)

	count, err := cal.CountAvailable(date(2025, time.June, 1), date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNew_RejectsBadArguments(t *testing.T) {
	_, err := New(0, 365, date(2025, time.January, 1))
	assert.Error(t, err)

	_, err = New(2, 0, date(2025, time.January, 1))
	assert.Error(t, err)
}

func TestCountAvailable_InvalidRange(t *testing.T) {
	cal := newTestCalendar(t, 2)

	_, err := cal.CountAvailable(date(2025, time.June, 5), date(2025, time.June, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = cal.CountAvailable(date(2025, time.June, 1), date(2025, time.June, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCountAvailable_OutOfHorizon(t *testing.T) {
	cal := newTestCalendar(t, 2)

	_, err := cal.CountAvailable(date(2024, time.December, 30), date(2025, time.January, 2))
	assert.ErrorIs(t, err, ErrOutOfHorizon)

	_, err = cal.CountAvailable(date(2025, time.December, 30), date(2026, time.January, 10))
	assert.ErrorIs(t, err, ErrOutOfHorizon)
}

func TestCountAvailable_LastHorizonDay(t *testing.T) {
	cal, err := New(1, 10, date(2025, time.January, 1))
	require.NoError(t, err)

	// end is exclusive, so a stay ending on the day after the last
	// pre-populated date is still inside the horizon.
	count, err := cal.CountAvailable(date(2025, time.January, 10), date(2025, time.January, 11))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = cal.CountAvailable(date(2025, time.January, 11), date(2025, time.January, 12))
	assert.ErrorIs(t, err, ErrOutOfHorizon)
}

func TestReserve_ScenarioTwoRooms(t *testing.T) {
	cal := newTestCalendar(t, 2)
	start, end := date(2025, time.June, 1), date(2025, time.June, 3)

	first, err := cal.Reserve(start, end)
	require.NoError(t, err)
	assert.Equal(t, 0, first)

	count, err := cal.CountAvailable(start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	second, err := cal.Reserve(start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, second)

	count, err = cal.CountAvailable(start, end)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = cal.Reserve(start, end)
	assert.ErrorIs(t, err, ErrNoCapacity)

	require.NoError(t, cal.Release(first, start, end))

	count, err = cal.CountAvailable(start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReserve_NoDoubleBookingOnOverlap(t *testing.T) {
	cal := newTestCalendar(t, 2)

	first, err := cal.Reserve(date(2025, time.June, 1), date(2025, time.June, 5))
	require.NoError(t, err)

	// Overlapping range must land on the other room.
	second, err := cal.Reserve(date(2025, time.June, 4), date(2025, time.June, 6))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestReserve_BackToBackStaysShareRoom(t *testing.T) {
	cal := newTestCalendar(t, 1)

	_, err := cal.Reserve(date(2025, time.June, 1), date(2025, time.June, 3))
	require.NoError(t, err)

	// Check-out day is exclusive, so a stay starting that day fits.
	idx, err := cal.Reserve(date(2025, time.June, 3), date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestReserveRelease_RoundTrip(t *testing.T) {
	cal := newTestCalendar(t, 3)
	start, end := date(2025, time.March, 10), date(2025, time.March, 15)

	before, err := cal.CountAvailable(start, end)
	require.NoError(t, err)

	idx, err := cal.Reserve(start, end)
	require.NoError(t, err)
	require.NoError(t, cal.Release(idx, start, end))

	after, err := cal.CountAvailable(start, end)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRelease_Idempotent(t *testing.T) {
	cal := newTestCalendar(t, 2)
	start, end := date(2025, time.June, 1), date(2025, time.June, 3)

	idx, err := cal.Reserve(start, end)
	require.NoError(t, err)

	require.NoError(t, cal.Release(idx, start, end))
	require.NoError(t, cal.Release(idx, start, end))

	count, err := cal.CountAvailable(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRelease_BadRoomIndex(t *testing.T) {
	cal := newTestCalendar(t, 2)

	err := cal.Release(5, date(2025, time.June, 1), date(2025, time.June, 3))
	assert.ErrorIs(t, err, ErrBadRoomIndex)
}

func TestIsRoomFree(t *testing.T) {
	cal := newTestCalendar(t, 2)
	start, end := date(2025, time.June, 1), date(2025, time.June, 3)

	idx, err := cal.Reserve(start, end)
	require.NoError(t, err)

	free, err := cal.IsRoomFree(idx, start, end)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = cal.IsRoomFree(1-idx, start, end)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCountAvailable_BoundsInvariant(t *testing.T) {
	cal := newTestCalendar(t, 4)

	for i := 0; i < 4; i++ {
		_, err := cal.Reserve(date(2025, time.May, 1), date(2025, time.May, 10))
		require.NoError(t, err)

		count, err := cal.CountAvailable(date(2025, time.May, 1), date(2025, time.May, 10))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 0)
		assert.LessOrEqual(t, count, cal.TotalRooms())
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	cal, err := New(2, 5, date(2025, time.June, 1))
	require.NoError(t, err)

	idx, err := cal.Reserve(date(2025, time.June, 2), date(2025, time.June, 4))
	require.NoError(t, err)

	data, err := json.Marshal(cal)
	require.NoError(t, err)

	var decoded Calendar
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, cal.Start(), decoded.Start())
	assert.Equal(t, cal.TotalRooms(), decoded.TotalRooms())
	assert.Equal(t, cal.HorizonDays(), decoded.HorizonDays())

	free, err := decoded.IsRoomFree(idx, date(2025, time.June, 2), date(2025, time.June, 4))
	require.NoError(t, err)
	assert.False(t, free)

	count, err := decoded.CountAvailable(date(2025, time.June, 1), date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestJSON_RejectsHoles(t *testing.T) {
	raw := `[{"2025-06-01": true, "2025-06-03": true}]`

	var decoded Calendar
	err := json.Unmarshal([]byte(raw), &decoded)
	assert.Error(t, err)
}

func TestJSON_RejectsEmpty(t *testing.T) {
	var decoded Calendar
	err := json.Unmarshal([]byte(`[]`), &decoded)
	assert.Error(t, err)
}
