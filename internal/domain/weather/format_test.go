package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatLocalTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ts     time.Time
		offset int
		want   string
	}{
		{
			name:   "recent moment includes date",
			ts:     time.Date(2024, 3, 15, 11, 42, 0, 0, time.UTC),
			offset: 0,
			want:   "11:42am, mar 15",
		},
		{
			name:   "on the hour drops minutes",
			ts:     time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
			offset: 0,
			want:   "11am, mar 15",
		},
		{
			name:   "older than two hours is time only",
			ts:     time.Date(2024, 3, 15, 2, 30, 0, 0, time.UTC),
			offset: 0,
			want:   "2:30am",
		},
		{
			name:   "offset shifts into local zone",
			ts:     time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			offset: 19800, // +05:30
			want:   "5:30pm, mar 15",
		},
		{
			name:   "offset can cross the date line",
			ts:     time.Date(2024, 3, 15, 11, 30, 0, 0, time.UTC),
			offset: 46800, // +13:00
			want:   "12:30am, mar 16",
		},
		{
			name:   "zero time is not available",
			ts:     time.Time{},
			offset: 0,
			want:   "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatLocalTime(tt.ts, tt.offset, now))
		})
	}
}

func TestWeatherLocalStrings(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	w := Weather{
		TimezoneOffset: 0,
		ObservedAt:     time.Date(2024, 3, 15, 11, 55, 0, 0, time.UTC),
		Sunrise:        time.Date(2024, 3, 15, 6, 10, 0, 0, time.UTC),
		Sunset:         time.Date(2024, 3, 15, 18, 5, 0, 0, time.UTC),
	}

	require.Equal(t, "11:55am, mar 15", w.LocalObservedAt(now))
	require.Equal(t, "6:10am", w.LocalSunrise(now))
	require.Equal(t, "6:05pm", w.LocalSunset(now))
}
