// Package derive computes the read-only fields of a patient record: BMI,
// pregnancy trimester and the human-readable age string. These values are
// always recomputed from their inputs and never accepted from user input.
package derive

import (
	"fmt"
	"math"
	"time"

	"medirec-service/internal/pkg/datemath"
)

// BMI returns weight (kg) over squared height (m), rounded to one decimal.
// ok is false when height is not positive; callers treat a missing input as
// an empty result before calling.
func BMI(weightKg, heightCm float64) (float64, bool) {
	if heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	value := weightKg / (heightM * heightM)
	return math.Round(value*10) / 10, true
}

// Trimester maps gestational weeks to the display label used by the
// pregnancy sub-form.
func Trimester(weeks int) string {
	switch {
	case weeks <= 13:
		return "1st Trimester"
	case weeks <= 27:
		return "2nd Trimester"
	default:
		return "3rd Trimester"
	}
}

// Age display cutoffs. These are intentionally day-count approximations
// (13 and 19 flat years) and differ from the classifier's 12y/18y band
// boundaries; the divergence is long-standing observed behavior and must
// not be unified here.
const (
	displayNeonateMaxDays = 28
	displayInfantMaxDays  = 365
	displayChildMaxDays   = 13 * 365
	displayAdolescentMax  = 19 * 365
)

// AgeDisplay renders the age banner shown next to the date-of-birth input.
// ageInDays wins when known; otherwise it is recomputed from dateOfBirth.
// Both absent yields the empty string.
func AgeDisplay(ageInDays int, hasAgeInDays bool, dateOfBirth string, today time.Time) string {
	days := ageInDays
	if !hasAgeInDays {
		computed, ok := datemath.AgeInDays(dateOfBirth, today)
		if !ok {
			return ""
		}
		days = computed
	}
	if days < 0 {
		days = 0
	}

	switch {
	case days < displayNeonateMaxDays:
		return fmt.Sprintf("%d days (Neonate)", days)
	case days < displayInfantMaxDays:
		months := days / 30
		remainder := days % 30
		if remainder > 0 {
			return fmt.Sprintf("%d months %d days (Infant)", months, remainder)
		}
		return fmt.Sprintf("%d months (Infant)", months)
	case days < displayChildMaxDays:
		years := days / 365
		months := (days % 365) / 30
		if months > 0 {
			return fmt.Sprintf("%d years %d months (Child)", years, months)
		}
		return fmt.Sprintf("%d years (Child)", years)
	case days < displayAdolescentMax:
		return fmt.Sprintf("%d years (Adolescent)", days/365)
	default:
		return fmt.Sprintf("%d years (Adult)", days/365)
	}
}
