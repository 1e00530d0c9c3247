package policy

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	cal_us "github.com/rickar/cal/v2/us"
)

// ICalendar is the holiday-calendar collaborator a RulePlus consults. It
// is satisfied directly by *cal.BusinessCalendar, kept as an interface so
// a caller can plug in a calendar built from any region's holiday set
// without this package depending on how it was constructed.
type ICalendar interface {
	AddHoliday(holiday ...*cal.Holiday)
	IsHoliday(date time.Time) (actual, observed bool, h *cal.Holiday)
}

var (
	calendarRegistry = make(map[string]ICalendar)
	registryMutex    sync.RWMutex
)

// NewCalendar builds a business calendar for the given ISO region code.
// Only "us" is wired to a concrete holiday set; any other code returns an
// error. Callers that need another region's holidays build their own
// ICalendar and pass it via Options.Calendar instead of ISOCode.
func NewCalendar(iso string) (ICalendar, error) {
	iso = CleanISO(iso)
	if iso == "" {
		return nil, fmt.Errorf("policy: empty ISO code")
	}

	bc := cal.NewBusinessCalendar()
	switch iso {
	case "us":
		bc.AddHoliday(cal_us.Holidays...)
	default:
		return nil, fmt.Errorf("policy: ISO code not supported: %s", iso)
	}
	return bc, nil
}

// GetCalendar retrieves a previously registered calendar by ISO code.
func GetCalendar(iso string) (ICalendar, error) {
	iso = CleanISO(iso)
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	c, ok := calendarRegistry[iso]
	if !ok {
		return nil, fmt.Errorf("policy: no calendar registered for ISO code %q", iso)
	}
	return c, nil
}

// SetCalendar registers a calendar under a normalized ISO code, so later
// RulePlus instances can share it by name instead of rebuilding it.
func SetCalendar(iso string, c ICalendar) {
	iso = CleanISO(iso)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	calendarRegistry[iso] = c
}

// CleanISO normalizes an ISO region code for registry lookups.
func CleanISO(code string) string {
	return strings.TrimSpace(strings.ToLower(code))
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
