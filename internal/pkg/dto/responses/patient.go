package responses

import "medirec-service/internal/pkg/ageband"

// ViewFlags drives the age-dependent parts of the patient editor: how age
// is entered, whether the pediatric lab panel shows and which stature field
// applies, plus the band's vital reference ranges.
type ViewFlags struct {
	AgeBand            ageband.Band                  `json:"age_band"`
	AgeInputMode       string                        `json:"age_input_mode"`
	PediatricPanelOpen bool                          `json:"pediatric_panel_open"`
	UseLengthField     bool                          `json:"use_length_field"`
	NormalRanges       map[string]ageband.VitalRange `json:"normal_ranges"`
}

// PatientEditorState is the full editor snapshot returned by every patient
// operation: the mode the editor should be in, the form with derived fields
// recomputed, and the view flags for the current age band.
type PatientEditorState struct {
	Mode        string                 `json:"mode"`
	PatientCode string                 `json:"patient_code"`
	Form        map[string]interface{} `json:"form"`
	Flags       ViewFlags              `json:"flags"`
	Warning     string                 `json:"warning,omitempty"`
}
