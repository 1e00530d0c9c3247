package policy

import "strings"

// ObservanceMode selects how an occurrence that lands on a holiday or
// weekend is relocated when neither ShiftOffWeekend nor ShiftOffHolidays
// alone says what to do (e.g. "move to the next business day regardless
// of which rule pushed the original date out").
type ObservanceMode string

const (
	ObservanceNone           ObservanceMode = "none"
	ObservanceNextBizDay     ObservanceMode = "next-business-day"
	ObservancePreviousBizDay ObservanceMode = "previous-business-day"
)

// IsEmpty reports whether the mode is unset or only whitespace.
func (om ObservanceMode) IsEmpty() bool {
	return strings.TrimSpace(string(om)) == ""
}

// TrimSpace trims whitespace from the mode's underlying string.
func (om ObservanceMode) TrimSpace() ObservanceMode {
	return ObservanceMode(strings.TrimSpace(string(om)))
}
