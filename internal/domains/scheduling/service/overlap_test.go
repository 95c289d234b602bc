package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clts/internal/domains/booking/model"
)

func mustClock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("15:04", value)
	assert.NoError(t, err)

	return parsed
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)

	return parsed
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		other [2]string
		want  bool
	}{
		{"identical intervals", "09:00", "10:00", [2]string{"09:00", "10:00"}, true},
		{"partial overlap at start", "09:30", "10:30", [2]string{"09:00", "10:00"}, true},
		{"partial overlap at end", "08:30", "09:30", [2]string{"09:00", "10:00"}, true},
		{"contained", "09:15", "09:45", [2]string{"09:00", "10:00"}, true},
		{"containing", "08:00", "11:00", [2]string{"09:00", "10:00"}, true},
		{"back to back before", "08:00", "09:00", [2]string{"09:00", "10:00"}, false},
		{"back to back after", "10:00", "11:00", [2]string{"09:00", "10:00"}, false},
		{"fully apart", "13:00", "14:00", [2]string{"09:00", "10:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(mustClock(t, tt.start), mustClock(t, tt.end), mustClock(t, tt.other[0]), mustClock(t, tt.other[1]))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollidingBooking(t *testing.T) {
	existing := []model.Booking{
		{ID: "a", StartTime: mustClock(t, "09:00"), EndTime: mustClock(t, "10:00")},
		{ID: "b", StartTime: mustClock(t, "13:00"), EndTime: mustClock(t, "15:00")},
	}

	t.Run("free slot between bookings", func(t *testing.T) {
		assert.Nil(t, collidingBooking(existing, mustClock(t, "10:00"), mustClock(t, "13:00")))
	})

	t.Run("returns the colliding booking", func(t *testing.T) {
		got := collidingBooking(existing, mustClock(t, "14:00"), mustClock(t, "16:00"))
		assert.NotNil(t, got)
		assert.Equal(t, "b", got.ID)
	})

	t.Run("empty day", func(t *testing.T) {
		assert.Nil(t, collidingBooking(nil, mustClock(t, "09:00"), mustClock(t, "10:00")))
	})
}

func TestExpandWeekly(t *testing.T) {
	t.Run("expands in ascending weekly steps", func(t *testing.T) {
		dates := expandWeekly(mustDay(t, "2025-03-03"), mustDay(t, "2025-03-17"))

		assert.Equal(t, []time.Time{
			mustDay(t, "2025-03-03"),
			mustDay(t, "2025-03-10"),
			mustDay(t, "2025-03-17"),
		}, dates)
	})

	t.Run("repeat boundary between steps is not included", func(t *testing.T) {
		dates := expandWeekly(mustDay(t, "2025-03-03"), mustDay(t, "2025-03-16"))

		assert.Equal(t, []time.Time{
			mustDay(t, "2025-03-03"),
			mustDay(t, "2025-03-10"),
		}, dates)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		dates := expandWeekly(mustDay(t, "2025-01-27"), mustDay(t, "2025-02-10"))

		assert.Equal(t, []time.Time{
			mustDay(t, "2025-01-27"),
			mustDay(t, "2025-02-03"),
			mustDay(t, "2025-02-10"),
		}, dates)
	})
}
