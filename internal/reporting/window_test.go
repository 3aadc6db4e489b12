package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PST", 8*3600)

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, manila)
	w := Today(now)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, manila), w.Start)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, manila), w.End)
	assert.True(t, w.Contains(now))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.Start))
}

func TestTrailingDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, manila)
	w := TrailingDays(now, 7)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, manila), w.Start)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, manila), w.End)
	assert.True(t, w.Contains(now))
	assert.True(t, w.Contains(time.Date(2024, 3, 9, 0, 0, 0, 0, manila)))
	assert.False(t, w.Contains(time.Date(2024, 3, 8, 23, 59, 59, 0, manila)))
}

func TestMonthToDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, manila)
	w := MonthToDate(now)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, manila), w.Start)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, manila), w.End)
}

func TestCustomRange(t *testing.T) {
	w, err := CustomRange("2024-03-01", "2024-03-10", manila)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, manila), w.Start)
	// the end date is inclusive
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, manila), w.End)
	assert.True(t, w.Contains(time.Date(2024, 3, 10, 23, 0, 0, 0, manila)))
	assert.Equal(t, "2024-03-01 to 2024-03-10", w.Label)

	_, err = CustomRange("bad", "2024-03-10", manila)
	assert.Error(t, err)
	_, err = CustomRange("2024-03-10", "2024-03-01", manila)
	assert.Error(t, err)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, manila)

	w := ResolveWindow("2024-03-01", "2024-03-10", now)
	assert.Equal(t, "2024-03-01 to 2024-03-10", w.Label)

	// missing or bad bounds fall back to month-to-date
	assert.Equal(t, "This month", ResolveWindow("", "", now).Label)
	assert.Equal(t, "This month", ResolveWindow("2024-03-01", "", now).Label)
	assert.Equal(t, "This month", ResolveWindow("oops", "2024-03-10", now).Label)
}
