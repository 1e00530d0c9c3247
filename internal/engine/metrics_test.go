package engine

import "testing"

func TestDayOfWeek(t *testing.T) {
	cm := CalendarMetrics{}
	// 2020-01-01 was a Wednesday (RFC 5545 index 2, 0=Monday).
	if got := cm.DayOfWeek(2020, 1, 1); got != 2 {
		t.Errorf("DayOfWeek(2020,1,1) = %d, want 2 (Wednesday)", got)
	}
	// 2024-02-29 (leap day) was a Thursday.
	if got := cm.DayOfWeek(2024, 2, 29); got != 3 {
		t.Errorf("DayOfWeek(2024,2,29) = %d, want 3 (Thursday)", got)
	}
}

func TestDaysInMonthLeapYear(t *testing.T) {
	cm := CalendarMetrics{}
	if got := cm.DaysInMonth(2024, 2); got != 29 {
		t.Errorf("DaysInMonth(2024,2) = %d, want 29", got)
	}
	if got := cm.DaysInMonth(2023, 2); got != 28 {
		t.Errorf("DaysInMonth(2023,2) = %d, want 28", got)
	}
}

func TestDayOfYearRoundTrip(t *testing.T) {
	cm := CalendarMetrics{}
	for _, tc := range []struct{ y, m, d int }{
		{2024, 1, 1}, {2024, 2, 29}, {2024, 12, 31}, {2023, 3, 15},
	} {
		yd := cm.DayOfYear(tc.y, tc.m, tc.d)
		m, d := cm.FromDayOfYear(tc.y, yd)
		if m != tc.m || d != tc.d {
			t.Errorf("FromDayOfYear(%d, DayOfYear(%d,%d,%d)=%d) = (%d,%d), want (%d,%d)",
				tc.y, tc.y, tc.m, tc.d, yd, m, d, tc.m, tc.d)
		}
	}
}

func TestAddDaysCrossesYearBoundary(t *testing.T) {
	cm := CalendarMetrics{}
	y, m, d := cm.AddDays(2023, 12, 30, 5)
	if y != 2024 || m != 1 || d != 4 {
		t.Errorf("AddDays(2023-12-30, +5) = %d-%d-%d, want 2024-1-4", y, m, d)
	}
	y, m, d = cm.AddDays(2024, 1, 2, -5)
	if y != 2023 || m != 12 || d != 28 {
		t.Errorf("AddDays(2024-1-2, -5) = %d-%d-%d, want 2023-12-28", y, m, d)
	}
}

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{2000: true, 1900: false, 2024: true, 2023: false, 2400: true}
	for y, want := range cases {
		if got := IsLeapYear(y); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", y, got, want)
		}
	}
}

func TestWeekOfYear(t *testing.T) {
	cm := CalendarMetrics{WeekStart: 0} // Monday
	cases := []struct {
		y, m, d        int
		week, weekYear int
	}{
		{2023, 1, 2, 1, 2023},
		{2020, 6, 15, 25, 2020},
		{2024, 12, 29, 52, 2024}, // Sunday, last day of week 52
		{2024, 12, 30, 1, 2025},  // Monday, week 1 of next year
		{2022, 1, 1, 52, 2021},   // Saturday, tail of the prior year's last week
		{2021, 1, 1, 53, 2020},   // 2020 is a 53-week year
	}
	for _, tc := range cases {
		week, weekYear := cm.WeekOfYear(tc.y, tc.m, tc.d)
		if week != tc.week || weekYear != tc.weekYear {
			t.Errorf("WeekOfYear(%d,%d,%d) = (%d, %d), want (%d, %d)",
				tc.y, tc.m, tc.d, week, weekYear, tc.week, tc.weekYear)
		}
	}
}

func TestWeeksInYear(t *testing.T) {
	cm := CalendarMetrics{WeekStart: 0}
	cases := map[int]int{2020: 53, 2021: 52, 2024: 52, 2026: 53}
	for y, want := range cases {
		if got := cm.WeeksInYear(y); got != want {
			t.Errorf("WeeksInYear(%d) = %d, want %d", y, got, want)
		}
	}
}
