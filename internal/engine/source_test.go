package engine

import "testing"

func drainSource(t *testing.T, s *Source, n int) []string {
	t.Helper()
	var out []string
	for i := 0; i < n; i++ {
		inst, _, err := s.Next()
		if err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		out = append(out, fmtInst(inst))
	}
	return out
}

func TestSourceYearly(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Yearly, Interval: 2,
		StartYear: 2020, StartMonth: 6, StartDay: 15, StartHour: 12,
	})
	assertSeq(t, drainSource(t, s, 3), []string{
		"2020-06-15 12:00:00",
		"2022-06-15 12:00:00",
		"2024-06-15 12:00:00",
	})
}

// MONTHLY from the 31st skips months that lack a 31st rather than
// clamping to their last day.
func TestSourceMonthlySkipsShortMonths(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Monthly, Interval: 1,
		StartYear: 2024, StartMonth: 1, StartDay: 31,
	})
	assertSeq(t, drainSource(t, s, 4), []string{
		"2024-01-31 00:00:00",
		"2024-03-31 00:00:00",
		"2024-05-31 00:00:00",
		"2024-07-31 00:00:00",
	})
}

// With a day-retargeting part configured, the monthly advance keeps every
// period and clamps the seed day, leaving the real day to the expansion.
func TestSourceMonthlyRetargetedKeepsShortMonths(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Monthly, Interval: 1,
		Bymonthday: []int{15},
		StartYear:  2024, StartMonth: 1, StartDay: 31,
	})
	assertSeq(t, drainSource(t, s, 3), []string{
		"2024-01-31 00:00:00",
		"2024-02-29 00:00:00",
		"2024-03-31 00:00:00",
	})
}

func TestSourceWeeklyCrossesYear(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Weekly, Interval: 1,
		StartYear: 2020, StartMonth: 12, StartDay: 28,
	})
	assertSeq(t, drainSource(t, s, 3), []string{
		"2020-12-28 00:00:00",
		"2021-01-04 00:00:00",
		"2021-01-11 00:00:00",
	})
}

func TestSourceHourlyCarriesIntoNextDay(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Hourly, Interval: 6,
		StartYear: 2020, StartMonth: 2, StartDay: 28, StartHour: 20,
	})
	assertSeq(t, drainSource(t, s, 3), []string{
		"2020-02-28 20:00:00",
		"2020-02-29 02:00:00",
		"2020-02-29 08:00:00",
	})
}

func TestSourceNextSetIsSingleton(t *testing.T) {
	s := NewSource(&ParsedRule{
		Freq: Daily, Interval: 1,
		StartYear: 2020, StartMonth: 1, StartDay: 1,
	})
	set, err := s.NextSet()
	if err != nil {
		t.Fatalf("NextSet: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("NextSet batch length = %d, want 1", set.Len())
	}
}
