// Package ageband classifies patients into age bands from their age in days.
// The band table is the single source of truth for age-dependent behavior:
// pediatric lab panel visibility, the days-vs-years age input mode, the
// length-vs-height field choice and the per-band vital-sign normal ranges.
package ageband

import (
	"strconv"
	"strings"
)

type Band string

const (
	BandNeonate    Band = "neonate"
	BandInfant     Band = "infant"
	BandChild      Band = "child"
	BandAdolescent Band = "adolescent"
	BandAdult      Band = "adult"
)

const (
	// MaxAgeDays caps the classifiable domain; anything above still maps
	// to adult.
	MaxAgeDays = 99999

	// PediatricPanelCutoffDays is the boundary below which the editor
	// switches to day-based age input and opens the pediatric lab panel.
	PediatricPanelCutoffDays = 365

	// LengthHeightCutoffDays is the infant/toddler boundary below which
	// recumbent length is recorded instead of standing height.
	LengthHeightCutoffDays = 730
)

type bandRange struct {
	band    Band
	minDays int
	maxDays int
}

// Ordered and non-overlapping; evaluated in order, first match wins.
var bandTable = []bandRange{
	{BandNeonate, 0, 28},
	{BandInfant, 29, 365},
	{BandChild, 366, 4380},
	{BandAdolescent, 4381, 6570},
	{BandAdult, 6571, MaxAgeDays},
}

// Classify maps an age in days to its band. Negative input falls through to
// the adult default rather than failing, matching the lenient editor
// behavior for half-typed values.
func Classify(ageInDays int) Band {
	for _, r := range bandTable {
		if ageInDays >= r.minDays && ageInDays <= r.maxDays {
			return r.band
		}
	}
	return BandAdult
}

// ClassifyValue classifies loosely typed form input. Empty, missing or
// non-numeric values classify as adult.
func ClassifyValue(v interface{}) Band {
	switch value := v.(type) {
	case nil:
		return BandAdult
	case int:
		return Classify(value)
	case int64:
		return Classify(int(value))
	case float64:
		return Classify(int(value))
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return BandAdult
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return BandAdult
		}
		return Classify(int(parsed))
	default:
		return BandAdult
	}
}

// VitalRange is an inclusive normal range for a vital sign.
type VitalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var heartRateRanges = map[Band]VitalRange{
	BandNeonate:    {100, 160},
	BandInfant:     {90, 150},
	BandChild:      {70, 120},
	BandAdolescent: {60, 100},
	BandAdult:      {60, 100},
}

var respiratoryRateRanges = map[Band]VitalRange{
	BandNeonate:    {30, 60},
	BandInfant:     {24, 40},
	BandChild:      {18, 30},
	BandAdolescent: {12, 20},
	BandAdult:      {12, 20},
}

// NormalRanges returns the band-appropriate vital-sign reference ranges,
// keyed by field name.
func NormalRanges(b Band) map[string]VitalRange {
	return map[string]VitalRange{
		"heart_rate":       heartRateRanges[b],
		"respiratory_rate": respiratoryRateRanges[b],
	}
}
