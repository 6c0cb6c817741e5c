package patients

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"medirec-service/internal/app/contracts"
	"medirec-service/internal/app/services/shared/transport"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	patientRecordsClientInstance contracts.PatientRecordsClient
	oncePatientRecordsClient     sync.Once
)

// recordEnvelope is the records backend's response contract for patient
// operations.
type recordEnvelope struct {
	Success bool                   `json:"success"`
	Patient map[string]interface{} `json:"patient"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
}

type patientRecordsClient struct {
	BaseUrl   string
	APIToken  string
	Transport contracts.BackendTransport
	Log       *zap.Logger
}

func NewPatientRecordsClient(baseUrl, apiToken string, backendTransport contracts.BackendTransport, logger *zap.Logger) contracts.PatientRecordsClient {
	oncePatientRecordsClient.Do(func() {
		client := &patientRecordsClient{
			BaseUrl:   strings.TrimSuffix(baseUrl, "/"),
			APIToken:  apiToken,
			Transport: backendTransport,
			Log:       logger,
		}
		patientRecordsClientInstance = client
	})
	return patientRecordsClientInstance
}

func (c *patientRecordsClient) FindPatientByCode(ctx context.Context, patientCode string) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordsClient.FindPatientByCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)

	response, err := c.Transport.Send(ctx, &transport.Request{
		Method: constvars.MethodGet,
		URL:    fmt.Sprintf("%s/patients/code/%s", c.BaseUrl, patientCode),
		Header: c.authHeader(),
	})
	if err != nil {
		c.Log.Error("patientRecordsClient.FindPatientByCode error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	record, err := c.decodePatient(response, constvars.MethodGet)
	if err != nil {
		c.Log.Error("patientRecordsClient.FindPatientByCode backend rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientRecordsClient.FindPatientByCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return record, nil
}

func (c *patientRecordsClient) CreatePatient(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordsClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	response, err := c.Transport.Send(ctx, &transport.Request{
		Method: constvars.MethodPost,
		URL:    fmt.Sprintf("%s/patients", c.BaseUrl),
		Body:   body,
		Header: c.authHeader(),
	})
	if err != nil {
		c.Log.Error("patientRecordsClient.CreatePatient error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	record, err := c.decodePatient(response, constvars.MethodPost)
	if err != nil {
		c.Log.Error("patientRecordsClient.CreatePatient backend rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientRecordsClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return record, nil
}

func (c *patientRecordsClient) UpdatePatient(ctx context.Context, patientCode string, payload map[string]interface{}) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordsClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	response, err := c.Transport.Send(ctx, &transport.Request{
		Method: constvars.MethodPut,
		URL:    fmt.Sprintf("%s/patients/code/%s", c.BaseUrl, patientCode),
		Body:   body,
		Header: c.authHeader(),
	})
	if err != nil {
		c.Log.Error("patientRecordsClient.UpdatePatient error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	record, err := c.decodePatient(response, constvars.MethodPut)
	if err != nil {
		c.Log.Error("patientRecordsClient.UpdatePatient backend rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientRecordsClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return record, nil
}

func (c *patientRecordsClient) DeletePatient(ctx context.Context, patientCode string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRecordsClient.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)

	response, err := c.Transport.Send(ctx, &transport.Request{
		Method: constvars.MethodDelete,
		URL:    fmt.Sprintf("%s/patients/code/%s", c.BaseUrl, patientCode),
		Header: c.authHeader(),
	})
	if err != nil {
		c.Log.Error("patientRecordsClient.DeletePatient error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if err := c.statusError(response, constvars.MethodDelete); err != nil {
		c.Log.Error("patientRecordsClient.DeletePatient backend rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("patientRecordsClient.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return nil
}

func (c *patientRecordsClient) authHeader() map[string]string {
	if c.APIToken == "" {
		return nil
	}
	return map[string]string{
		constvars.HeaderAuthorization: constvars.AuthorizationBearerPrefix + c.APIToken,
	}
}

// decodePatient maps a backend response to a record map or a typed error.
func (c *patientRecordsClient) decodePatient(response *transport.Response, method string) (map[string]interface{}, error) {
	if err := c.statusError(response, method); err != nil {
		return nil, err
	}

	var envelope recordEnvelope
	if err := json.Unmarshal(response.Body, &envelope); err != nil {
		return nil, exceptions.ErrRecordsDecodeResponse(err, string(response.Body))
	}
	if envelope.Patient == nil {
		return map[string]interface{}{}, nil
	}
	return envelope.Patient, nil
}

func (c *patientRecordsClient) statusError(response *transport.Response, method string) error {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	backendMessage := extractBackendMessage(response.Body)
	err := fmt.Errorf("records backend returned %d: %s", response.StatusCode, backendMessage)

	switch response.StatusCode {
	case constvars.StatusUnauthorized, constvars.StatusForbidden:
		return exceptions.ErrRecordsUnauthorized(err)
	case constvars.StatusNotFound:
		return exceptions.ErrPatientNotFound(err)
	}

	// The backend signals a duplicate identifier through its error message
	// rather than a dedicated status.
	if strings.Contains(strings.ToLower(backendMessage), "already exists") {
		return exceptions.ErrDuplicatePatientCode(err)
	}

	switch method {
	case constvars.MethodPost:
		return exceptions.ErrRecordsCreatePatient(err)
	case constvars.MethodPut:
		return exceptions.ErrRecordsUpdatePatient(err)
	case constvars.MethodDelete:
		return exceptions.ErrRecordsDeletePatient(err)
	default:
		return exceptions.ErrRecordsGetPatient(err)
	}
}

func extractBackendMessage(body []byte) string {
	var envelope recordEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return string(body)
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return string(body)
}
