package icalexport

import (
	"strings"
	"testing"
	"time"

	rrule "github.com/arrowloop/rrulecore"
)

func TestEncodeRRule(t *testing.T) {
	dtStart := time.Date(2020, time.January, 1, 9, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.MONTHLY,
		Dtstart:   dtStart,
		Count:     4,
		Byweekday: []rrule.Weekday{rrule.MO.Nth(1), rrule.FR.Nth(-1)},
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}

	encoded, err := EncodeRRule(r)
	if err != nil {
		t.Fatalf("EncodeRRule: %v", err)
	}
	if !strings.Contains(encoded, "FREQ=MONTHLY") {
		t.Errorf("expected FREQ=MONTHLY in %q", encoded)
	}
	if !strings.Contains(encoded, "COUNT=4") {
		t.Errorf("expected COUNT=4 in %q", encoded)
	}
	if !strings.Contains(encoded, "BYDAY=") {
		t.Errorf("expected BYDAY= in %q", encoded)
	}
}

func TestRenderVEvent(t *testing.T) {
	dtStart := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: dtStart,
		Count:   3,
		Bymonth: []int{3, 9},
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}

	out, err := Render(VEvent{
		UID:     "test-event-1",
		Summary: "Quarterly review",
		DTStart: dtStart,
		Rule:    r,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VEVENT",
		"UID:test-event-1",
		"SUMMARY:Quarterly review",
		"DTSTART:20200301T000000Z",
		"RRULE:FREQ=YEARLY",
		"END:VEVENT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected VEVENT to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderInstances(t *testing.T) {
	dtStart := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.MONTHLY,
		Dtstart:    dtStart,
		Bymonthday: []int{31},
	})
	if err != nil {
		t.Fatalf("NewRRule: %v", err)
	}

	out, err := RenderInstances("test-event-2", "31st of the month", r, 3)
	if err != nil {
		t.Fatalf("RenderInstances: %v", err)
	}
	if !strings.Contains(out, "RDATE:") {
		t.Errorf("expected RDATE: line, got:\n%s", out)
	}
	if strings.Contains(out, "RRULE:") {
		t.Errorf("did not expect an RRULE: line, got:\n%s", out)
	}
	// February is skipped per the non-existent-day rule, so the second
	// RDATE should be March, not February.
	if !strings.Contains(out, "20240331T000000Z") {
		t.Errorf("expected March 31 among RDATEs, got:\n%s", out)
	}
}
