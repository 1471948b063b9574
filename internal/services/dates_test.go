package services

import (
	"testing"
	"time"
)

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"same_day_mid_month", "2025-01-15", 1, "2025-02-15"},
		{"jan_31_clamps_to_feb_28", "2025-01-31", 1, "2025-02-28"},
		{"jan_31_leap_year_clamps_to_feb_29", "2024-01-31", 1, "2024-02-29"},
		{"clamp_does_not_stick", "2025-01-31", 2, "2025-03-31"},
		{"march_31_clamps_to_april_30", "2025-03-31", 1, "2025-04-30"},
		{"year_rollover", "2025-11-30", 3, "2026-02-28"},
		{"zero_months", "2025-01-31", 0, "2025-01-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := time.Parse("2006-01-02", tc.start)
			if err != nil {
				t.Fatalf("bad start date: %v", err)
			}
			got := addMonthsClamped(start, tc.months)
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("addMonthsClamped(%s, %d) = %s, want %s",
					tc.start, tc.months, got.Format("2006-01-02"), tc.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2100, time.February, 28},
	}
	for _, tc := range cases {
		if got := daysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("daysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := monthRange(2025, 12)

	if !start.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %s", start)
	}
	if !end.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %s", end)
	}
}
