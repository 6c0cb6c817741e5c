package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsValidDate(t *testing.T) {
	t.Run("Valid ISO Date", func(t *testing.T) {
		assert.True(t, IsValidDate("1990-06-15"))
	})

	t.Run("Empty String", func(t *testing.T) {
		assert.False(t, IsValidDate(""))
		assert.False(t, IsValidDate("   "))
	})

	t.Run("Zero Sentinel", func(t *testing.T) {
		assert.False(t, IsValidDate("0000-00-00"))
	})

	t.Run("Unparsable Input", func(t *testing.T) {
		assert.False(t, IsValidDate("15/06/1990"))
		assert.False(t, IsValidDate("not-a-date"))
		assert.False(t, IsValidDate("1990-13-40"))
	})
}

func TestAgeInDays(t *testing.T) {
	t.Run("Whole Days Truncated", func(t *testing.T) {
		days, ok := AgeInDays("2024-01-01", date("2024-01-31"))
		assert.True(t, ok)
		assert.Equal(t, 30, days)
	})

	t.Run("Invalid Birth Date", func(t *testing.T) {
		_, ok := AgeInDays("", date("2024-01-31"))
		assert.False(t, ok)
		_, ok = AgeInDays("0000-00-00", date("2024-01-31"))
		assert.False(t, ok)
	})

	t.Run("Monotonic As Today Advances", func(t *testing.T) {
		previous := -1
		for _, today := range []string{"2020-03-01", "2020-06-01", "2021-01-01", "2025-12-31"} {
			days, ok := AgeInDays("2020-02-29", date(today))
			assert.True(t, ok)
			assert.GreaterOrEqual(t, days, previous, "age in days must not decrease as today advances")
			previous = days
		}
	})
}

func TestAgeInYears(t *testing.T) {
	t.Run("Birthday Already Reached", func(t *testing.T) {
		years, ok := AgeInYears("1990-06-15", date("2024-06-15"))
		assert.True(t, ok)
		assert.Equal(t, 34, years)
	})

	t.Run("Birthday Not Yet Reached", func(t *testing.T) {
		years, ok := AgeInYears("1990-06-15", date("2024-06-14"))
		assert.True(t, ok)
		assert.Equal(t, 33, years)

		years, ok = AgeInYears("1990-06-15", date("2024-05-20"))
		assert.True(t, ok)
		assert.Equal(t, 33, years)
	})

	t.Run("Invalid Birth Date", func(t *testing.T) {
		_, ok := AgeInYears("junk", date("2024-06-14"))
		assert.False(t, ok)
	})

	t.Run("Monotonic As Today Advances", func(t *testing.T) {
		previous := -1
		for _, today := range []string{"2000-01-01", "2005-06-14", "2005-06-15", "2030-12-31"} {
			years, ok := AgeInYears("1999-06-15", date(today))
			assert.True(t, ok)
			assert.GreaterOrEqual(t, years, previous)
			previous = years
		}
	})
}

func TestDurationBetween(t *testing.T) {
	t.Run("Full Components", func(t *testing.T) {
		got := DurationBetween(date("2020-01-10"), date("2023-03-25"))
		assert.Equal(t, "3 years, 2 months, 15 days", got)
	})

	t.Run("Days Borrow From Stop Month", func(t *testing.T) {
		// 2023-01-20 -> 2023-03-05: day component is negative and borrows
		// from February's day count.
		got := DurationBetween(date("2023-01-20"), date("2023-03-05"))
		assert.Equal(t, "1 months, 13 days", got)
	})

	t.Run("Months Borrow From Years", func(t *testing.T) {
		got := DurationBetween(date("2022-11-05"), date("2023-02-05"))
		assert.Equal(t, "3 months", got)
	})

	t.Run("Zero Leading Units Omitted", func(t *testing.T) {
		got := DurationBetween(date("2023-05-01"), date("2023-05-20"))
		assert.Equal(t, "19 days", got)
	})

	t.Run("Identical Dates", func(t *testing.T) {
		got := DurationBetween(date("2023-05-01"), date("2023-05-01"))
		assert.Equal(t, "0 days", got)
	})
}
