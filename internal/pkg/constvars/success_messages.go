package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Patient-related messages
	PatientFetchedSuccess = "patient record fetched successfully"
	PatientDraftSuccess   = "draft patient record prepared"
	PatientSavedSuccess   = "patient record saved successfully"
	PatientDeletedSuccess = "patient record deleted successfully"
	PatientDerivedSuccess = "derived fields recomputed successfully"

	// Health messages
	HealthCheckSuccess = "service is healthy"

	// Editor warnings carried inside an otherwise successful response
	WarningPatientNotFound = "patient record was not found, a new draft has been prepared instead"
)
