package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "tuesday", date: "2025-10-14", want: false},
		{name: "friday", date: "2025-10-17", want: false},
		{name: "saturday", date: "2025-10-18", want: true},
		{name: "sunday", date: "2025-10-19", want: true},
		{name: "monday", date: "2025-10-20", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWeekend(date(t, tt.date)))
		})
	}
}

func TestIsWeekend_periodic(t *testing.T) {
	d := date(t, "2024-01-01")
	for i := 0; i < 400; i++ {
		day := d.AddDate(0, 0, i)
		if IsWeekend(day) != IsWeekend(day.AddDate(0, 0, 7)) {
			t.Fatalf("IsWeekend(%s) differs from a week later", day.Format("2006-01-02"))
		}
	}
}

func TestCountDays(t *testing.T) {
	tests := []struct {
		name            string
		start, end      string
		excludeWeekends bool
		want            int
		wantErr         error
	}{
		{name: "same day", start: "2025-10-14", end: "2025-10-14", want: 1},
		{name: "same day (weekend excluded)", start: "2025-10-18", end: "2025-10-18", excludeWeekends: true, want: 0},
		{name: "full week", start: "2025-10-14", end: "2025-10-20", want: 7},
		{name: "full week (weekends excluded)", start: "2025-10-14", end: "2025-10-20", excludeWeekends: true, want: 5},
		{name: "leap february", start: "2024-02-01", end: "2024-02-29", want: 29},
		{name: "across years", start: "2024-12-30", end: "2025-01-03", excludeWeekends: true, want: 5},
		{name: "inverted range", start: "2025-10-20", end: "2025-10-14", wantErr: ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountDays(date(t, tt.start), date(t, tt.end), tt.excludeWeekends)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountDays_properties(t *testing.T) {
	base := date(t, "2025-01-01")
	for offset := 0; offset < 30; offset++ {
		for length := 0; length < 45; length++ {
			start := base.AddDate(0, 0, offset)
			end := start.AddDate(0, 0, length)

			all, err := CountDays(start, end, false)
			require.NoError(t, err)
			business, err := CountDays(start, end, true)
			require.NoError(t, err)

			assert.Equal(t, length+1, all)
			assert.LessOrEqual(t, business, all)
		}
	}
}

func TestCountDays_ignoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	start := time.Date(2025, 10, 14, 23, 30, 0, 0, loc)
	end := time.Date(2025, 10, 15, 0, 15, 0, 0, loc)

	got, err := CountDays(start, end, false)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCounter_holidays(t *testing.T) {
	c := Counter{Holidays: NewHolidays(map[time.Time]string{
		date(t, "2025-10-16"): "Founders' Day",
	})}

	got, err := c.CountDays(date(t, "2025-10-14"), date(t, "2025-10-20"), true)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = c.CountDays(date(t, "2025-10-14"), date(t, "2025-10-20"), false)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestDays(t *testing.T) {
	days := Days(date(t, "2025-10-30"), date(t, "2025-11-02"))
	require.Len(t, days, 4)
	assert.Equal(t, "2025-10-30", days[0].Format("2006-01-02"))
	assert.Equal(t, "2025-11-02", days[3].Format("2006-01-02"))

	assert.Nil(t, Days(date(t, "2025-11-02"), date(t, "2025-10-30")))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("14/10/2025")
	assert.Error(t, err)

	d, err := ParseDate(" 2025-10-14 ")
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, d.Weekday())
}

func TestHolidaysFrom(t *testing.T) {
	h, err := HolidaysFrom(map[string]string{"2025-12-25": "Christmas", "2025-12-26": "Boxing Day"})
	require.NoError(t, err)
	assert.True(t, h.Contains(time.Date(2025, 12, 25, 15, 0, 0, 0, time.UTC)))
	assert.False(t, h.Contains(date(t, "2025-12-24")))

	_, err = HolidaysFrom(map[string]string{"25/12/2025": "Christmas"})
	assert.Error(t, err)
}
