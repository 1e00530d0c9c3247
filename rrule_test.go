package rrule

import (
	"errors"
	"testing"
	"time"
)

func timesEqual(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAllWithCount(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       YEARLY,
		Count:      3,
		Bymonth:    []int{1},
		Bymonthday: []int{1},
		Dtstart:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestAllWithUntil(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Until:   time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC),
		Dtstart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	got := r.All()
	if len(got) != 4 {
		t.Fatalf("All() returned %d occurrences %v, want 4 (UNTIL is inclusive)", len(got), got)
	}
}

func TestMonthlyNthWeekday(t *testing.T) {
	// First Monday and last Friday of each month.
	r, err := NewRRule(ROption{
		Freq:      MONTHLY,
		Count:     4,
		Byweekday: []Weekday{MO.Nth(1), FR.Nth(-1)},
		Dtstart:   time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 28, 9, 0, 0, 0, time.UTC),
	})
}

func TestNonExistentDaySkipped(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Count:      5,
		Bymonthday: []int{31},
		Dtstart:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
	})
}

func TestBetween(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Count:   30,
		Dtstart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	got := r.Between(
		time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC),
		false,
	)
	if len(got) != 4 {
		t.Fatalf("Between exclusive returned %d occurrences %v, want 4", len(got), got)
	}
	gotInc := r.Between(
		time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC),
		true,
	)
	if len(gotInc) != 6 {
		t.Fatalf("Between inclusive returned %d occurrences %v, want 6", len(gotInc), gotInc)
	}
}

func TestBeforeAfter(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Count:   10,
		Dtstart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	dt := time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := r.After(dt, false); !got.Equal(time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("After exclusive = %v, want 2020-01-06", got)
	}
	if got := r.After(dt, true); !got.Equal(dt) {
		t.Errorf("After inclusive = %v, want 2020-01-05", got)
	}
	if got := r.Before(dt, false); !got.Equal(time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Before exclusive = %v, want 2020-01-04", got)
	}
	if got := r.Before(dt, true); !got.Equal(dt) {
		t.Errorf("Before inclusive = %v, want 2020-01-05", got)
	}
}

func TestDTStartFloorMonthly(t *testing.T) {
	// The first month's expansion backfills June 1 and June 15, both
	// before DTSTART; they must be skipped and must not consume COUNT.
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Count:      3,
		Bymonthday: []int{1, 15},
		Dtstart:    time.Date(2020, 6, 20, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestDTStartFloorYearly(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    YEARLY,
		Count:   2,
		Bymonth: []int{1},
		Dtstart: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
	})
}

func TestMonthDayInShorterMonthThanDTStart(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Count:      2,
		Bymonthday: []int{15},
		Dtstart:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	// Jan 15 precedes DTSTART; February has no 31st but must still
	// produce its 15th.
	timesEqual(t, r.All(), []time.Time{
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
}

func TestByEasterStandalone(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:     YEARLY,
		Count:    3,
		Byeaster: []int{0},
		Dtstart:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	timesEqual(t, r.All(), []time.Time{
		time.Date(2020, 4, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 4, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 4, 17, 0, 0, 0, 0, time.UTC),
	})
}

func TestAllWithLimitOverConstrained(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:       MONTHLY,
		Bymonth:    []int{2},
		Bymonthday: []int{31},
		Dtstart:    time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	_, err = r.AllWithLimit(5)
	if err == nil {
		t.Fatal("AllWithLimit on an unsatisfiable rule: expected an error")
	}
	if !errors.Is(err, ErrOverConstrained) {
		t.Errorf("expected errors.Is(err, ErrOverConstrained), got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []ROption{
		{Freq: MONTHLY, Bymonth: []int{13}},
		{Freq: MONTHLY, Bymonthday: []int{32}},
		{Freq: MONTHLY, Byhour: []int{24}},
		{Freq: WEEKLY, Byweekno: []int{54}},
		{Freq: MONTHLY, Interval: -1},
		{Freq: MONTHLY, Byweekday: []Weekday{MO.Nth(54)}},
	}
	for _, opt := range cases {
		if _, err := NewRRule(opt); err == nil {
			t.Errorf("NewRRule(%+v): expected a bounds error", opt)
		} else if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("NewRRule(%+v): expected ErrInvalidOption, got %v", opt, err)
		}
	}
}

func TestDTStartRecalculates(t *testing.T) {
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Count:   2,
		Dtstart: time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	r.DTStart(time.Date(2021, 6, 1, 15, 30, 0, 0, time.UTC))
	timesEqual(t, r.All(), []time.Time{
		time.Date(2021, 6, 1, 15, 30, 0, 0, time.UTC),
		time.Date(2021, 6, 2, 15, 30, 0, 0, time.UTC),
	})
}

func TestIteratorPreservesLocation(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	r, err := NewRRule(ROption{
		Freq:    DAILY,
		Count:   1,
		Dtstart: time.Date(2020, 1, 1, 9, 0, 0, 0, ny),
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}
	got := r.All()
	if len(got) != 1 {
		t.Fatalf("All() returned %d occurrences, want 1", len(got))
	}
	if got[0].Location() != ny {
		t.Errorf("occurrence location = %v, want America/New_York", got[0].Location())
	}
}
