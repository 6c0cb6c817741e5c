// Package datemath holds the pure date arithmetic behind the patient editor:
// age in days and years from a date of birth, and human-readable durations.
// Dates on the wire are plain YYYY-MM-DD strings.
package datemath

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// zeroDate is the sentinel some upstream systems store instead of NULL.
const zeroDate = "0000-00-00"

func IsValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s == zeroDate {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate returns the parsed date and whether it was valid.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AgeInDays returns whole days between dateOfBirth and today, truncated
// toward zero. ok is false when dateOfBirth is not a valid date.
func AgeInDays(dateOfBirth string, today time.Time) (int, bool) {
	birth, ok := ParseDate(dateOfBirth)
	if !ok {
		return 0, false
	}
	return int(today.Sub(birth).Hours() / 24), true
}

// AgeInYears returns the calendar-aware year difference: the raw year delta
// minus one if today's month/day falls before the birthday.
func AgeInYears(dateOfBirth string, today time.Time) (int, bool) {
	birth, ok := ParseDate(dateOfBirth)
	if !ok {
		return 0, false
	}
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years, true
}

// DurationBetween formats the span between start and stop as
// "Y years, M months, D days", borrowing from the next-larger unit when a
// component is negative. Zero-valued leading units are omitted; if every
// component is zero the result is "0 days".
func DurationBetween(start, stop time.Time) string {
	years := stop.Year() - start.Year()
	months := int(stop.Month()) - int(start.Month())
	days := stop.Day() - start.Day()

	if days < 0 {
		months--
		days += daysInPreviousMonth(stop)
	}
	if months < 0 {
		years--
		months += 12
	}

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d years", years))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d months", months))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, ", ")
}

// daysInPreviousMonth returns the day count of the month preceding t, which
// is what a negative day component borrows against.
func daysInPreviousMonth(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, 0, -1).Day()
}
