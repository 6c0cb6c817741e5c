package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MEDIREC_SVC_"
)

const (
	ResourcePatients = "patients"
	ResourceHealth   = "health"
)

const (
	URLParamPatientCode = "patientCode"
)

// Patient editor modes. Create holds until a full-section save succeeds,
// a partial-section save keeps the editor in edit mode.
const (
	EditorModeCreate = "create"
	EditorModeEdit   = "edit"
	EditorModeView   = "view"
)

const (
	DraftPatientCode = "new"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	AgeInputModeDays  = "days"
	AgeInputModeYears = "years"
)

const (
	EventPatientSaved   = "patient.saved"
	EventPatientDeleted = "patient.deleted"
)
