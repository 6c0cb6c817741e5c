package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientPatientNameRequired           = "patient name is required"
	ErrClientPatientNotFound               = "patient record not found"
	ErrClientInvalidSection                = "invalid record section"
	ErrClientBackendUnreachable            = "records backend is not reachable, please try again later"
	ErrClientPatientCodeExists             = "patient code already exists"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevMissingRequiredFields  = "missing required fields"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevMissingRequestID       = "request ID missing from context"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"

	// Records backend messages
	ErrDevRecordsCreatePatient     = "failed to create patient on records backend"
	ErrDevRecordsUpdatePatient     = "failed to update patient on records backend"
	ErrDevRecordsGetPatient        = "failed to get patient from records backend"
	ErrDevRecordsDeletePatient     = "failed to delete patient on records backend"
	ErrDevRecordsPatientNotFound   = "patient not found on records backend"
	ErrDevRecordsUnauthorized      = "records backend rejected the credentials"
	ErrDevRecordsDuplicateCode     = "records backend reported duplicate patient code"
	ErrDevRecordsDecodeResponse    = "failed to decode records backend response: %s"
	ErrDevRecordsHealthCheckFailed = "records backend health check failed"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisGetNoData  = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublish = "failed to publish message to queue %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
