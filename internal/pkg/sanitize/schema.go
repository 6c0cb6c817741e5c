package sanitize

// Kind selects the cleaning rule applied to a field before transmission.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
	KindBool
	KindArray
)

// Group places a field in one of the record's attribute groups. Sections
// project groups into a payload; identity is included in every section
// because the backend keys all writes by patient code.
type Group int

const (
	GroupIdentity Group = iota
	GroupPregnancy
	GroupVitals
	GroupLabs
)

// Section names a subset of the record transmitted by a partial save.
type Section string

const (
	SectionBasic  Section = "basic"
	SectionVitals Section = "vitals"
	SectionLabs   Section = "labs"
	SectionAll    Section = "all"
)

func ValidSection(s Section) bool {
	switch s {
	case SectionBasic, SectionVitals, SectionLabs, SectionAll:
		return true
	}
	return false
}

var sectionGroups = map[Section]map[Group]bool{
	SectionBasic:  {GroupIdentity: true, GroupPregnancy: true},
	SectionVitals: {GroupIdentity: true, GroupVitals: true},
	SectionLabs:   {GroupIdentity: true, GroupLabs: true},
	SectionAll:    {GroupIdentity: true, GroupPregnancy: true, GroupVitals: true, GroupLabs: true},
}

type FieldSpec struct {
	Name  string
	Kind  Kind
	Group Group
}

// FieldIdentifier travels in the URL on updates and is stripped from the
// body; FieldFullName is the only field required on every save.
const (
	FieldIdentifier = "patient_code"
	FieldFullName   = "full_name"
)

// Schema is the declared field surface of a patient record. Only declared
// fields reach the outgoing payload; anything else in form state is dropped.
// Display-only values (age_display, egfr) are deliberately not declared:
// egfr is computed by the lab pipeline server-side and is never
// client-editable.
var Schema = []FieldSpec{
	// Identity and demographics
	{FieldIdentifier, KindText, GroupIdentity},
	{FieldFullName, KindText, GroupIdentity},
	{"gender", KindText, GroupIdentity},
	{"date_of_birth", KindDate, GroupIdentity},
	{"contact_number", KindText, GroupIdentity},
	{"address", KindText, GroupIdentity},
	{"active", KindBool, GroupIdentity},
	{"diagnosis", KindText, GroupIdentity},
	{"allergies", KindArray, GroupIdentity},
	{"appointment_date", KindDate, GroupIdentity},

	// Derived age state; recomputed before every save, never trusted from
	// raw input.
	{"age_in_days", KindNumeric, GroupIdentity},
	{"age", KindNumeric, GroupIdentity},
	{"patient_type", KindText, GroupIdentity},

	// Pregnancy sub-record
	{"is_pregnant", KindBool, GroupPregnancy},
	{"pregnancy_weeks", KindNumeric, GroupPregnancy},
	{"pregnancy_trimester", KindText, GroupPregnancy},
	{"edd", KindDate, GroupPregnancy},
	{"pregnancy_notes", KindText, GroupPregnancy},

	// Vitals
	{"weight", KindNumeric, GroupVitals},
	{"height", KindNumeric, GroupVitals},
	{"length", KindNumeric, GroupVitals},
	{"bmi", KindNumeric, GroupVitals},
	{"temperature", KindNumeric, GroupVitals},
	{"heart_rate", KindNumeric, GroupVitals},
	{"respiratory_rate", KindNumeric, GroupVitals},
	{"systolic_bp", KindNumeric, GroupVitals},
	{"diastolic_bp", KindNumeric, GroupVitals},
	{"spo2", KindNumeric, GroupVitals},
	{"head_circumference", KindNumeric, GroupVitals},
	{"muac", KindNumeric, GroupVitals},

	// Hematology
	{"hemoglobin", KindNumeric, GroupLabs},
	{"hematocrit", KindNumeric, GroupLabs},
	{"rbc_count", KindNumeric, GroupLabs},
	{"wbc_count", KindNumeric, GroupLabs},
	{"platelet_count", KindNumeric, GroupLabs},
	{"mcv", KindNumeric, GroupLabs},
	{"mch", KindNumeric, GroupLabs},
	{"mchc", KindNumeric, GroupLabs},
	{"rdw", KindNumeric, GroupLabs},
	{"neutrophils_pct", KindNumeric, GroupLabs},
	{"lymphocytes_pct", KindNumeric, GroupLabs},
	{"monocytes_pct", KindNumeric, GroupLabs},
	{"eosinophils_pct", KindNumeric, GroupLabs},
	{"basophils_pct", KindNumeric, GroupLabs},
	{"esr", KindNumeric, GroupLabs},
	{"crp", KindNumeric, GroupLabs},

	// Glucose and renal
	{"fasting_glucose", KindNumeric, GroupLabs},
	{"random_glucose", KindNumeric, GroupLabs},
	{"hba1c", KindNumeric, GroupLabs},
	{"urea", KindNumeric, GroupLabs},
	{"creatinine", KindNumeric, GroupLabs},
	{"uric_acid", KindNumeric, GroupLabs},

	// Electrolytes and minerals
	{"sodium", KindNumeric, GroupLabs},
	{"potassium", KindNumeric, GroupLabs},
	{"chloride", KindNumeric, GroupLabs},
	{"calcium", KindNumeric, GroupLabs},
	{"phosphate", KindNumeric, GroupLabs},
	{"magnesium", KindNumeric, GroupLabs},
	{"bicarbonate", KindNumeric, GroupLabs},

	// Liver and proteins
	{"total_protein", KindNumeric, GroupLabs},
	{"albumin", KindNumeric, GroupLabs},
	{"globulin", KindNumeric, GroupLabs},
	{"total_bilirubin", KindNumeric, GroupLabs},
	{"direct_bilirubin", KindNumeric, GroupLabs},
	{"indirect_bilirubin", KindNumeric, GroupLabs},
	{"alt", KindNumeric, GroupLabs},
	{"ast", KindNumeric, GroupLabs},
	{"alp", KindNumeric, GroupLabs},
	{"ggt", KindNumeric, GroupLabs},
	{"ldh", KindNumeric, GroupLabs},
	{"amylase", KindNumeric, GroupLabs},
	{"lipase", KindNumeric, GroupLabs},

	// Lipids
	{"total_cholesterol", KindNumeric, GroupLabs},
	{"hdl_cholesterol", KindNumeric, GroupLabs},
	{"ldl_cholesterol", KindNumeric, GroupLabs},
	{"triglycerides", KindNumeric, GroupLabs},

	// Endocrine and vitamins
	{"tsh", KindNumeric, GroupLabs},
	{"free_t3", KindNumeric, GroupLabs},
	{"free_t4", KindNumeric, GroupLabs},
	{"vitamin_d", KindNumeric, GroupLabs},
	{"vitamin_b12", KindNumeric, GroupLabs},
	{"folate", KindNumeric, GroupLabs},

	// Iron studies
	{"ferritin", KindNumeric, GroupLabs},
	{"serum_iron", KindNumeric, GroupLabs},
	{"tibc", KindNumeric, GroupLabs},
	{"transferrin_saturation", KindNumeric, GroupLabs},

	// Cardiac and coagulation
	{"psa", KindNumeric, GroupLabs},
	{"troponin_i", KindNumeric, GroupLabs},
	{"ck_total", KindNumeric, GroupLabs},
	{"ck_mb", KindNumeric, GroupLabs},
	{"bnp", KindNumeric, GroupLabs},
	{"d_dimer", KindNumeric, GroupLabs},
	{"inr", KindNumeric, GroupLabs},
	{"prothrombin_time", KindNumeric, GroupLabs},
	{"aptt", KindNumeric, GroupLabs},
	{"fibrinogen", KindNumeric, GroupLabs},
	{"procalcitonin", KindNumeric, GroupLabs},
	{"lactate", KindNumeric, GroupLabs},

	// Pediatric panel
	{"bilirubin_neonatal", KindNumeric, GroupLabs},
	{"g6pd", KindNumeric, GroupLabs},
	{"tsh_neonatal", KindNumeric, GroupLabs},

	// Enumerated results
	{"blood_group", KindText, GroupLabs},
	{"rh_factor", KindText, GroupLabs},
	{"urine_protein", KindText, GroupLabs},
	{"urine_glucose", KindText, GroupLabs},
	{"urine_ketones", KindText, GroupLabs},
	{"hbsag", KindText, GroupLabs},
	{"anti_hcv", KindText, GroupLabs},
	{"hiv_status", KindText, GroupLabs},
	{"malaria_smear", KindText, GroupLabs},
}
