package patients

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"medirec-service/internal/app/config"
	"medirec-service/internal/app/contracts"
	"medirec-service/internal/pkg/ageband"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/datemath"
	"medirec-service/internal/pkg/derive"
	"medirec-service/internal/pkg/dto/requests"
	"medirec-service/internal/pkg/dto/responses"
	"medirec-service/internal/pkg/exceptions"
	"medirec-service/internal/pkg/sanitize"
	"medirec-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type patientUsecase struct {
	RecordsClient  contracts.PatientRecordsClient
	HealthService  contracts.RecordsHealthService
	Redis          contracts.RedisRepository
	EventPublisher contracts.EventPublisher
	Archive        contracts.ArchiveStorage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	nowFn          func() time.Time
}

func NewPatientUsecase(
	recordsClient contracts.PatientRecordsClient,
	healthService contracts.RecordsHealthService,
	redisRepository contracts.RedisRepository,
	eventPublisher contracts.EventPublisher,
	archiveStorage contracts.ArchiveStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		RecordsClient:  recordsClient,
		HealthService:  healthService,
		Redis:          redisRepository,
		EventPublisher: eventPublisher,
		Archive:        archiveStorage,
		InternalConfig: internalConfig,
		Log:            logger,
		nowFn:          time.Now,
	}
}

func (u *patientUsecase) GetPatientByCode(ctx context.Context, patientCode string) (*responses.PatientEditorState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.Log.Info("patientUsecase.GetPatientByCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)

	if patientCode == constvars.DraftPatientCode {
		return u.draftState(utils.GeneratePatientCode(), ""), nil
	}

	if cached := u.cachedRecord(ctx, patientCode); cached != nil {
		return u.editorState(constvars.EditorModeView, patientCode, cached, ""), nil
	}

	record, err := u.RecordsClient.FindPatientByCode(ctx, patientCode)
	if err != nil {
		// A missing record becomes a fresh draft under the requested code;
		// the warning tells the caller the fetch came up empty.
		if exceptions.IsNotFound(err) {
			u.Log.Warn("patientUsecase.GetPatientByCode record missing, preparing draft",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientCodeKey, patientCode),
			)
			return u.draftState(patientCode, constvars.WarningPatientNotFound), nil
		}
		return nil, err
	}

	u.deriveAll(record)
	u.cacheRecord(ctx, patientCode, record)

	return u.editorState(constvars.EditorModeView, patientCode, record, ""), nil
}

func (u *patientUsecase) SavePatient(ctx context.Context, patientCode string, request *requests.SavePatient) (*responses.PatientEditorState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.Log.Info("patientUsecase.SavePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
		zap.String(constvars.LoggingSectionKey, request.Section),
	)

	section := sanitize.Section(request.Section)
	if !sanitize.ValidSection(section) {
		return nil, exceptions.ErrInvalidSection(fmt.Errorf("unknown section %q", request.Section))
	}

	form := cloneForm(request.Form)
	u.deriveAll(form)

	if !hasText(form[sanitize.FieldFullName]) {
		return nil, exceptions.ErrPatientNameRequired(fmt.Errorf("full_name is blank"))
	}

	creating := patientCode == constvars.DraftPatientCode
	if creating {
		// A create always transmits the full record under a fresh code.
		section = sanitize.SectionAll
		if !hasText(form[sanitize.FieldIdentifier]) {
			form[sanitize.FieldIdentifier] = utils.GeneratePatientCode()
		}
		patientCode, _ = form[sanitize.FieldIdentifier].(string)
	} else {
		form[sanitize.FieldIdentifier] = patientCode
	}

	if err := u.HealthService.EnsureOnline(ctx); err != nil {
		return nil, err
	}

	serverRecord, err := u.submit(ctx, creating, patientCode, form, section)
	if err != nil {
		return nil, err
	}

	// The server's view of the record wins over whatever the client sent.
	for key, value := range serverRecord {
		form[key] = value
	}
	u.deriveAll(form)
	u.cacheRecord(ctx, patientCode, form)
	u.publishEvent(ctx, constvars.EventPatientSaved, patientCode)

	mode := constvars.EditorModeEdit
	if section == sanitize.SectionAll {
		mode = constvars.EditorModeView
	}

	u.Log.Info("patientUsecase.SavePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return u.editorState(mode, patientCode, form, ""), nil
}

// submit issues the create or update, converting a duplicate-code rejection
// on create into a single corrective update against the same code.
func (u *patientUsecase) submit(ctx context.Context, creating bool, patientCode string, form map[string]interface{}, section sanitize.Section) (map[string]interface{}, error) {
	if !creating {
		return u.RecordsClient.UpdatePatient(ctx, patientCode, sanitize.Build(form, section, true))
	}

	serverRecord, err := u.RecordsClient.CreatePatient(ctx, sanitize.Build(form, sanitize.SectionAll, false))
	if err == nil {
		return serverRecord, nil
	}
	if !exceptions.IsDuplicatePatientCode(err) {
		return nil, err
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.Log.Warn("patientUsecase.submit duplicate code on create, converting to update",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return u.RecordsClient.UpdatePatient(ctx, patientCode, sanitize.Build(form, sanitize.SectionAll, true))
}

func (u *patientUsecase) DeletePatient(ctx context.Context, patientCode string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.Log.Info("patientUsecase.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)

	record, err := u.RecordsClient.FindPatientByCode(ctx, patientCode)
	if err != nil {
		return err
	}

	// Snapshot before the destructive call; a failed archive is logged but
	// does not block the delete.
	objectName := utils.GenerateArchiveObjectName(patientCode)
	if err := u.Archive.StoreSnapshot(ctx, objectName, record); err != nil {
		u.Log.Warn("patientUsecase.DeletePatient failed to archive snapshot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientCodeKey, patientCode),
			zap.Error(err),
		)
	}

	if err := u.RecordsClient.DeletePatient(ctx, patientCode); err != nil {
		return err
	}

	if err := u.Redis.Delete(ctx, recordCacheKey(patientCode)); err != nil {
		u.Log.Warn("patientUsecase.DeletePatient failed to drop cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	u.publishEvent(ctx, constvars.EventPatientDeleted, patientCode)

	u.Log.Info("patientUsecase.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	return nil
}

func (u *patientUsecase) DeriveFields(ctx context.Context, request *requests.DeriveField) (*responses.PatientEditorState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.Log.Info("patientUsecase.DeriveFields called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("field", request.Field),
	)

	form := cloneForm(request.Form)
	u.ApplyFieldChange(form, request.Field, request.Value)

	patientCode, _ := form[sanitize.FieldIdentifier].(string)
	return u.editorState(constvars.EditorModeEdit, patientCode, form, ""), nil
}

// ApplyFieldChange mutates one field and recomputes every derived value in
// the same update, so no stale BMI or trimester is ever observable. The
// changed field is the authoritative member of the age triple for this
// update.
func (u *patientUsecase) ApplyFieldChange(form map[string]interface{}, field string, value interface{}) {
	if value == nil {
		delete(form, field)
	} else {
		form[field] = value
	}
	u.deriveFrom(form, field)
}

// deriveAll recomputes the derived values with the default age priority
// (birth date first), used when no single field was just edited.
func (u *patientUsecase) deriveAll(form map[string]interface{}) {
	u.deriveFrom(form, "")
}

// deriveFrom recomputes age state, band, BMI, trimester and the display
// banner from the editable inputs. changedField names the field the caller
// just edited; when it is one of date_of_birth, age or age_in_days, that
// field drives the other two so the edit is never reverted by a stale
// sibling value.
func (u *patientUsecase) deriveFrom(form map[string]interface{}, changedField string) {
	today := u.nowFn()
	dateOfBirth, _ := form["date_of_birth"].(string)

	switch changedField {
	case "age":
		if years, ok := floatValue(form["age"]); ok {
			form["age_in_days"] = years * 365
		} else {
			delete(form, "age_in_days")
		}
	case "age_in_days":
		if days, ok := floatValue(form["age_in_days"]); ok {
			form["age"] = float64(int(days) / 365)
		} else {
			delete(form, "age")
		}
	default:
		// No direct age edit: the birth date wins when present, otherwise
		// whichever age figure exists fills in the other.
		if ageDays, ok := datemath.AgeInDays(dateOfBirth, today); ok {
			form["age_in_days"] = float64(ageDays)
			if ageYears, ok := datemath.AgeInYears(dateOfBirth, today); ok {
				form["age"] = float64(ageYears)
			}
		} else if days, ok := floatValue(form["age_in_days"]); ok {
			form["age"] = float64(int(days) / 365)
		} else if years, ok := floatValue(form["age"]); ok {
			form["age_in_days"] = years * 365
		}
	}

	ageDays, hasAgeDays := floatValue(form["age_in_days"])
	band := ageband.ClassifyValue(form["age_in_days"])
	form["patient_type"] = string(band)
	form["age_display"] = derive.AgeDisplay(int(ageDays), hasAgeDays, dateOfBirth, today)

	weight, hasWeight := floatValue(form["weight"])
	stature, hasStature := floatValue(form["height"])
	if !hasStature {
		stature, hasStature = floatValue(form["length"])
	}
	if hasWeight && hasStature {
		if bmi, ok := derive.BMI(weight, stature); ok {
			form["bmi"] = bmi
		} else {
			delete(form, "bmi")
		}
	} else {
		delete(form, "bmi")
	}

	if weeks, ok := floatValue(form["pregnancy_weeks"]); ok {
		form["pregnancy_trimester"] = derive.Trimester(int(weeks))
	} else {
		delete(form, "pregnancy_trimester")
	}
}

func (u *patientUsecase) draftState(patientCode, warning string) *responses.PatientEditorState {
	form := map[string]interface{}{
		sanitize.FieldIdentifier: patientCode,
		"active":                 true,
	}
	u.deriveAll(form)
	return u.editorState(constvars.EditorModeCreate, patientCode, form, warning)
}

func (u *patientUsecase) editorState(mode, patientCode string, form map[string]interface{}, warning string) *responses.PatientEditorState {
	ageDays, hasAgeDays := floatValue(form["age_in_days"])
	band := ageband.ClassifyValue(form["age_in_days"])

	ageInputMode := constvars.AgeInputModeYears
	pediatricPanelOpen := false
	useLengthField := false
	if hasAgeDays {
		if int(ageDays) < ageband.PediatricPanelCutoffDays {
			ageInputMode = constvars.AgeInputModeDays
			pediatricPanelOpen = true
		}
		useLengthField = int(ageDays) < ageband.LengthHeightCutoffDays
	}

	return &responses.PatientEditorState{
		Mode:        mode,
		PatientCode: patientCode,
		Form:        form,
		Flags: responses.ViewFlags{
			AgeBand:            band,
			AgeInputMode:       ageInputMode,
			PediatricPanelOpen: pediatricPanelOpen,
			UseLengthField:     useLengthField,
			NormalRanges:       ageband.NormalRanges(band),
		},
		Warning: warning,
	}
}

func (u *patientUsecase) cachedRecord(ctx context.Context, patientCode string) map[string]interface{} {
	cached, err := u.Redis.Get(ctx, recordCacheKey(patientCode))
	if err != nil || cached == "" {
		return nil
	}
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &record); err != nil {
		return nil
	}
	return record
}

func (u *patientUsecase) cacheRecord(ctx context.Context, patientCode string, record map[string]interface{}) {
	ttl := time.Duration(u.InternalConfig.Records.RecordCacheTTLInSeconds) * time.Second
	if err := u.Redis.Set(ctx, recordCacheKey(patientCode), record, ttl); err != nil {
		u.Log.Warn("patientUsecase.cacheRecord failed",
			zap.String(constvars.LoggingPatientCodeKey, patientCode),
			zap.Error(err),
		)
	}
}

func (u *patientUsecase) publishEvent(ctx context.Context, event, patientCode string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	utils.LogBusinessEvent(u.Log, event, requestID,
		zap.String(constvars.LoggingPatientCodeKey, patientCode),
	)
	payload := map[string]interface{}{
		"event":        event,
		"patient_code": patientCode,
		"request_id":   requestID,
		"emitted_at":   u.nowFn().UTC().Format(time.RFC3339),
	}
	if err := u.EventPublisher.Publish(ctx, u.InternalConfig.Records.EventQueue, payload); err != nil {
		u.Log.Warn("patientUsecase.publishEvent failed",
			zap.String(constvars.LoggingPatientCodeKey, patientCode),
			zap.Error(err),
		)
	}
}

func recordCacheKey(patientCode string) string {
	return fmt.Sprintf("patients:record:%s", patientCode)
}

func cloneForm(form map[string]interface{}) map[string]interface{} {
	cloned := make(map[string]interface{}, len(form))
	for key, value := range form {
		cloned[key] = value
	}
	return cloned
}

func hasText(v interface{}) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func floatValue(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
