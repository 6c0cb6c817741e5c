package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleForm() map[string]interface{} {
	return map[string]interface{}{
		"patient_code":    "PAT123456001",
		"full_name":       "  Jane Doe  ",
		"gender":          "female",
		"date_of_birth":   "1990-06-15",
		"allergies":       []interface{}{"penicillin", "  ", "latex"},
		"weight":          "70.5",
		"height":          175.0,
		"bmi":             23.0,
		"heart_rate":      "abc",
		"temperature":     "",
		"hemoglobin":      13.2,
		"blood_group":     "O",
		"is_pregnant":     false,
		"pregnancy_weeks": nil,
		"unknown_field":   "ignored",
	}
}

func TestBuild(t *testing.T) {
	t.Run("Cleans By Kind", func(t *testing.T) {
		payload := Build(sampleForm(), SectionAll, false)

		assert.Equal(t, "Jane Doe", payload["full_name"])
		assert.Equal(t, 70.5, payload["weight"])
		assert.Equal(t, 175.0, payload["height"])
		assert.Equal(t, []string{"penicillin", "latex"}, payload["allergies"])
		assert.Equal(t, false, payload["is_pregnant"])
	})

	t.Run("Strips Empty And Unparsable Values", func(t *testing.T) {
		payload := Build(sampleForm(), SectionAll, false)

		_, hasHeartRate := payload["heart_rate"]
		assert.False(t, hasHeartRate, "unparsable numeric must be dropped")
		_, hasTemperature := payload["temperature"]
		assert.False(t, hasTemperature, "blank numeric must be dropped")
		_, hasWeeks := payload["pregnancy_weeks"]
		assert.False(t, hasWeeks, "nil value must be stripped")
		_, hasUnknown := payload["unknown_field"]
		assert.False(t, hasUnknown, "undeclared keys must never be transmitted")
	})

	t.Run("Invalid Date Dropped", func(t *testing.T) {
		form := sampleForm()
		form["date_of_birth"] = "15/06/1990"
		payload := Build(form, SectionAll, false)
		_, has := payload["date_of_birth"]
		assert.False(t, has)
	})

	t.Run("Section Projection", func(t *testing.T) {
		payload := Build(sampleForm(), SectionVitals, false)

		assert.Equal(t, 70.5, payload["weight"])
		assert.Equal(t, "Jane Doe", payload["full_name"], "identity rides along with every section")
		_, hasLab := payload["hemoglobin"]
		assert.False(t, hasLab, "vitals section must not leak lab keys")
		_, hasPregnancy := payload["is_pregnant"]
		assert.False(t, hasPregnancy)

		labs := Build(sampleForm(), SectionLabs, false)
		assert.Equal(t, 13.2, labs["hemoglobin"])
		assert.Equal(t, "O", labs["blood_group"])
		_, hasVital := labs["weight"]
		assert.False(t, hasVital)
	})

	t.Run("Update Strips Identifier", func(t *testing.T) {
		create := Build(sampleForm(), SectionAll, false)
		assert.Equal(t, "PAT123456001", create["patient_code"])

		update := Build(sampleForm(), SectionAll, true)
		_, has := update["patient_code"]
		assert.False(t, has)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Build(sampleForm(), SectionAll, false)
		again := Build(once, SectionAll, false)
		assert.Equal(t, once, again)
	})
}

func TestValidSection(t *testing.T) {
	assert.True(t, ValidSection(SectionBasic))
	assert.True(t, ValidSection(SectionAll))
	assert.False(t, ValidSection(Section("labs ")))
	assert.False(t, ValidSection(Section("")))
}
