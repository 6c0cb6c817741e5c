package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	t.Run("Reference Value", func(t *testing.T) {
		value, ok := BMI(70, 175)
		assert.True(t, ok)
		assert.Equal(t, 22.9, value)
	})

	t.Run("One Decimal Rounding", func(t *testing.T) {
		value, ok := BMI(80, 180)
		assert.True(t, ok)
		assert.Equal(t, 24.7, value)
	})

	t.Run("Zero Or Negative Height", func(t *testing.T) {
		_, ok := BMI(70, 0)
		assert.False(t, ok)
		_, ok = BMI(70, -10)
		assert.False(t, ok)
	})
}

func TestTrimester(t *testing.T) {
	cases := []struct {
		weeks int
		want  string
	}{
		{1, "1st Trimester"},
		{13, "1st Trimester"},
		{14, "2nd Trimester"},
		{27, "2nd Trimester"},
		{28, "3rd Trimester"},
		{42, "3rd Trimester"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Trimester(c.weeks), "weeks=%d", c.weeks)
	}
}

func TestAgeDisplay(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Both Inputs Absent", func(t *testing.T) {
		assert.Equal(t, "", AgeDisplay(0, false, "", today))
		assert.Equal(t, "", AgeDisplay(0, false, "0000-00-00", today))
	})

	t.Run("Neonate In Days", func(t *testing.T) {
		assert.Equal(t, "10 days (Neonate)", AgeDisplay(10, true, "", today))
		assert.Equal(t, "0 days (Neonate)", AgeDisplay(0, true, "", today))
	})

	t.Run("Infant In Months And Days", func(t *testing.T) {
		assert.Equal(t, "3 months 10 days (Infant)", AgeDisplay(100, true, "", today))
		assert.Equal(t, "2 months (Infant)", AgeDisplay(60, true, "", today))
	})

	t.Run("Child In Years And Months", func(t *testing.T) {
		assert.Equal(t, "2 years 2 months (Child)", AgeDisplay(800, true, "", today))
		assert.Equal(t, "2 years (Child)", AgeDisplay(730, true, "", today))
	})

	t.Run("Display Cutoffs Use Flat Years", func(t *testing.T) {
		// The display bands deliberately use 13*365 and 19*365 rather than
		// the classifier's 4380/6570 boundaries.
		assert.Equal(t, "12 years 12 months (Child)", AgeDisplay(13*365-1, true, "", today))
		assert.Equal(t, "13 years (Adolescent)", AgeDisplay(13*365, true, "", today))
		assert.Equal(t, "18 years (Adolescent)", AgeDisplay(19*365-1, true, "", today))
		assert.Equal(t, "19 years (Adult)", AgeDisplay(19*365, true, "", today))
	})

	t.Run("Falls Back To Date Of Birth", func(t *testing.T) {
		assert.Equal(t, "31 years (Adult)", AgeDisplay(0, false, "1993-01-15", today))
	})
}
