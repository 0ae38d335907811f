package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func TestGenerateSlots(t *testing.T) {
	t.Run("half hour boundaries are truncated and the end is exclusive", func(t *testing.T) {
		slots := GenerateSlots("09:00", "12:30")
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)
	})

	t.Run("full working day", func(t *testing.T) {
		slots := GenerateSlots("09:00", "17:00")
		assert.Len(t, slots, 16)
		assert.Equal(t, "09:00", slots[0])
		assert.Equal(t, "16:30", slots[len(slots)-1])
	})

	t.Run("start minutes are ignored", func(t *testing.T) {
		assert.Equal(t, GenerateSlots("09:00", "17:00"), GenerateSlots("09:45", "17:59"))
	})

	t.Run("empty boundaries fall back to defaults", func(t *testing.T) {
		assert.Equal(t, GenerateSlots("09:00", "17:00"), GenerateSlots("", ""))
	})

	t.Run("unparseable boundaries fall back to defaults", func(t *testing.T) {
		assert.Equal(t, GenerateSlots("09:00", "17:00"), GenerateSlots("garbage", "nonsense"))
	})

	t.Run("inverted range yields no slots", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("17:00", "09:00"))
	})
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "monday", WeekdayName(monday))
	assert.Equal(t, "sunday", WeekdayName(monday.AddDate(0, 0, -1)))
}

func TestDateBookable(t *testing.T) {
	days := []string{"monday", "wednesday"}

	t.Run("today counts when the weekday matches", func(t *testing.T) {
		assert.True(t, DateBookable(monday, monday, days))
	})

	t.Run("yesterday is rejected", func(t *testing.T) {
		assert.False(t, DateBookable(monday.AddDate(0, 0, -1), monday, []string{"sunday"}))
	})

	t.Run("horizon boundary is inclusive", func(t *testing.T) {
		// Monday + 30 days lands on a Wednesday.
		boundary := monday.AddDate(0, 0, BookingHorizonDays)
		assert.Equal(t, "wednesday", WeekdayName(boundary))
		assert.True(t, DateBookable(boundary, monday, days))
	})

	t.Run("one day past the horizon is rejected", func(t *testing.T) {
		past := monday.AddDate(0, 0, BookingHorizonDays+1)
		assert.False(t, DateBookable(past, monday, []string{WeekdayName(past)}))
	})

	t.Run("off days are rejected inside the horizon", func(t *testing.T) {
		assert.False(t, DateBookable(monday.AddDate(0, 0, 1), monday, days))
	})

	t.Run("no available days means nothing is bookable", func(t *testing.T) {
		assert.False(t, DateBookable(monday, monday, nil))
	})
}

func TestDateBookableAcrossTimezones(t *testing.T) {
	days := []string{"monday", "wednesday"}

	t.Run("UTC-parsed today counts on a server west of UTC", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
		date, err := time.Parse("2006-01-02", "2026-03-02")
		require.NoError(t, err)
		assert.True(t, DateBookable(date, now, days))
	})

	t.Run("UTC-parsed today counts on a server east of UTC", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.FixedZone("UTC+13", 13*3600))
		date, err := time.Parse("2006-01-02", "2026-03-02")
		require.NoError(t, err)
		assert.True(t, DateBookable(date, now, days))
	})

	t.Run("horizon boundary stays inclusive off UTC", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
		boundary, err := time.Parse("2006-01-02", "2026-04-01")
		require.NoError(t, err)
		assert.True(t, DateBookable(boundary, now, days))

		past, err := time.Parse("2006-01-02", "2026-04-02")
		require.NoError(t, err)
		assert.False(t, DateBookable(past, now, []string{WeekdayName(past)}))
	})
}

func TestBookableDates(t *testing.T) {
	dates := BookableDates(monday, []string{"monday"})

	assert.Equal(t, []string{
		"2026-03-02",
		"2026-03-09",
		"2026-03-16",
		"2026-03-23",
		"2026-03-30",
	}, dates)
}

func TestBookableDatesEmptyDays(t *testing.T) {
	assert.Empty(t, BookableDates(monday, nil))
}
