package patients

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"medirec-service/internal/app/config"
	"medirec-service/internal/app/contracts"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/dto/requests"
	"medirec-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubRecordsClient struct {
	findRecord   map[string]interface{}
	findErr      error
	createRecord map[string]interface{}
	createErr    error
	updateRecord map[string]interface{}
	updateErr    error
	deleteErr    error

	createCalls       int
	updateCalls       int
	deleteCalls       int
	lastCreatePayload map[string]interface{}
	lastUpdatePayload map[string]interface{}
	lastUpdateCode    string
}

func (s *stubRecordsClient) FindPatientByCode(ctx context.Context, patientCode string) (map[string]interface{}, error) {
	return s.findRecord, s.findErr
}

func (s *stubRecordsClient) CreatePatient(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	s.createCalls++
	s.lastCreatePayload = payload
	return s.createRecord, s.createErr
}

func (s *stubRecordsClient) UpdatePatient(ctx context.Context, patientCode string, payload map[string]interface{}) (map[string]interface{}, error) {
	s.updateCalls++
	s.lastUpdateCode = patientCode
	s.lastUpdatePayload = payload
	return s.updateRecord, s.updateErr
}

func (s *stubRecordsClient) DeletePatient(ctx context.Context, patientCode string) error {
	s.deleteCalls++
	return s.deleteErr
}

type stubHealthService struct {
	err   error
	calls int
}

func (s *stubHealthService) CheckHealth(ctx context.Context) error { return s.err }
func (s *stubHealthService) EnsureOnline(ctx context.Context) error {
	s.calls++
	return s.err
}
func (s *stubHealthService) StartPoller(ctx context.Context) {}

type stubRedis struct {
	store map[string]string
}

func newStubRedis() *stubRedis { return &stubRedis{store: map[string]string{}} }

func (s *stubRedis) Delete(ctx context.Context, key string) error {
	delete(s.store, key)
	return nil
}

func (s *stubRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = string(data)
	return nil
}

func (s *stubRedis) Get(ctx context.Context, key string) (string, error) {
	return s.store[key], nil
}

type stubPublisher struct {
	queues   []string
	payloads []interface{}
}

func (s *stubPublisher) Publish(ctx context.Context, queueName string, payload interface{}) error {
	s.queues = append(s.queues, queueName)
	s.payloads = append(s.payloads, payload)
	return nil
}

type stubArchive struct {
	objectNames []string
	records     []map[string]interface{}
}

func (s *stubArchive) StoreSnapshot(ctx context.Context, objectName string, record map[string]interface{}) error {
	s.objectNames = append(s.objectNames, objectName)
	s.records = append(s.records, record)
	return nil
}

type fixture struct {
	usecase *patientUsecase
	client  *stubRecordsClient
	health  *stubHealthService
	redis   *stubRedis
	events  *stubPublisher
	archive *stubArchive
}

func newFixture() *fixture {
	client := &stubRecordsClient{}
	health := &stubHealthService{}
	redisStub := newStubRedis()
	events := &stubPublisher{}
	archiveStub := &stubArchive{}

	internalConfig := &config.InternalConfig{
		Records: config.Records{
			RecordCacheTTLInSeconds: 300,
			EventQueue:              "patient-events",
		},
	}

	usecase := NewPatientUsecase(client, health, redisStub, events, archiveStub, internalConfig, zap.NewNop()).(*patientUsecase)
	usecase.nowFn = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return &fixture{usecase: usecase, client: client, health: health, redis: redisStub, events: events, archive: archiveStub}
}

var _ contracts.PatientUsecase = (*patientUsecase)(nil)

func TestGetPatientByCode(t *testing.T) {
	t.Run("Draft Code Yields Create Mode", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.GetPatientByCode(context.Background(), constvars.DraftPatientCode)
		assert.NoError(t, err)
		assert.Equal(t, constvars.EditorModeCreate, state.Mode)
		assert.Regexp(t, regexp.MustCompile(constvars.RegexPatientCode), state.PatientCode)
		assert.Equal(t, true, state.Form["active"])
	})

	t.Run("Found Record Yields View Mode With Derived Fields", func(t *testing.T) {
		f := newFixture()
		f.client.findRecord = map[string]interface{}{
			"patient_code":  "PAT123456001",
			"full_name":     "Jane Doe",
			"date_of_birth": "1990-06-15",
			"weight":        70.0,
			"height":        175.0,
		}

		state, err := f.usecase.GetPatientByCode(context.Background(), "PAT123456001")
		assert.NoError(t, err)
		assert.Equal(t, constvars.EditorModeView, state.Mode)
		assert.Equal(t, 22.9, state.Form["bmi"])
		assert.Equal(t, "adult", state.Form["patient_type"])
		assert.Equal(t, constvars.AgeInputModeYears, state.Flags.AgeInputMode)
	})

	t.Run("Missing Record Falls Back To Draft With Warning", func(t *testing.T) {
		f := newFixture()
		f.client.findErr = exceptions.ErrPatientNotFound(errors.New("no such record"))

		state, err := f.usecase.GetPatientByCode(context.Background(), "PAT000000999")
		assert.NoError(t, err)
		assert.Equal(t, constvars.EditorModeCreate, state.Mode)
		assert.Equal(t, "PAT000000999", state.PatientCode)
		assert.Equal(t, constvars.WarningPatientNotFound, state.Warning)
	})

	t.Run("Infant Record Opens Pediatric Panel", func(t *testing.T) {
		f := newFixture()
		f.client.findRecord = map[string]interface{}{
			"patient_code":  "PAT123456002",
			"full_name":     "Baby Doe",
			"date_of_birth": "2024-02-01",
		}

		state, err := f.usecase.GetPatientByCode(context.Background(), "PAT123456002")
		assert.NoError(t, err)
		assert.Equal(t, constvars.AgeInputModeDays, state.Flags.AgeInputMode)
		assert.True(t, state.Flags.PediatricPanelOpen)
		assert.True(t, state.Flags.UseLengthField)
		assert.Equal(t, "infant", state.Form["patient_type"])
	})
}

func TestSavePatient(t *testing.T) {
	t.Run("Missing Name Blocks Submission", func(t *testing.T) {
		f := newFixture()

		_, err := f.usecase.SavePatient(context.Background(), "PAT123456001", &requests.SavePatient{
			Section: "all",
			Form:    map[string]interface{}{"full_name": "   "},
		})
		assert.Error(t, err)
		assert.Equal(t, 0, f.health.calls, "validation must run before the pre-flight")
		assert.Equal(t, 0, f.client.updateCalls)
	})

	t.Run("Unknown Section Rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.usecase.SavePatient(context.Background(), "PAT123456001", &requests.SavePatient{
			Section: "everything",
			Form:    map[string]interface{}{"full_name": "Jane Doe"},
		})
		assert.Error(t, err)
	})

	t.Run("Offline Backend Blocks Submission", func(t *testing.T) {
		f := newFixture()
		f.health.err = exceptions.ErrBackendUnreachable(errors.New("probe failed"))

		_, err := f.usecase.SavePatient(context.Background(), constvars.DraftPatientCode, &requests.SavePatient{
			Section: "all",
			Form:    map[string]interface{}{"full_name": "Jane Doe"},
		})
		assert.Error(t, err)
		assert.Equal(t, 0, f.client.createCalls)
	})

	t.Run("Create Adopts Generated Code And Enters View Mode", func(t *testing.T) {
		f := newFixture()
		f.client.createRecord = map[string]interface{}{"full_name": "Jane Doe"}

		state, err := f.usecase.SavePatient(context.Background(), constvars.DraftPatientCode, &requests.SavePatient{
			Section: "basic",
			Form:    map[string]interface{}{"full_name": "Jane Doe"},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, f.client.createCalls)
		assert.Regexp(t, regexp.MustCompile(constvars.RegexPatientCode), state.PatientCode)
		assert.Equal(t, state.PatientCode, f.client.lastCreatePayload["patient_code"])
		// A create always transmits the full record, so the editor closes.
		assert.Equal(t, constvars.EditorModeView, state.Mode)
	})

	t.Run("Duplicate Code Converts To Exactly One Update", func(t *testing.T) {
		f := newFixture()
		f.client.createErr = exceptions.ErrDuplicatePatientCode(errors.New("patient code already exists"))
		f.client.updateRecord = map[string]interface{}{
			"full_name": "Jane Server",
			"address":   "12 Main St",
		}

		state, err := f.usecase.SavePatient(context.Background(), constvars.DraftPatientCode, &requests.SavePatient{
			Section: "all",
			Form:    map[string]interface{}{"full_name": "Jane Doe"},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, f.client.createCalls)
		assert.Equal(t, 1, f.client.updateCalls)
		assert.Equal(t, state.PatientCode, f.client.lastUpdateCode)
		assert.Equal(t, constvars.EditorModeView, state.Mode)
		assert.Equal(t, "Jane Server", state.Form["full_name"], "server value wins the merge")
		assert.Equal(t, "12 Main St", state.Form["address"])
		_, hasIdentifier := f.client.lastUpdatePayload["patient_code"]
		assert.False(t, hasIdentifier, "identifier travels in the URL on updates")
	})

	t.Run("Vitals Section Transmits Only Identity And Vitals", func(t *testing.T) {
		f := newFixture()
		f.client.updateRecord = map[string]interface{}{}

		state, err := f.usecase.SavePatient(context.Background(), "PAT123456001", &requests.SavePatient{
			Section: "vitals",
			Form: map[string]interface{}{
				"full_name":  "Jane Doe",
				"weight":     70.0,
				"height":     175.0,
				"hemoglobin": 13.2,
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, f.client.updateCalls)
		assert.Equal(t, 70.0, f.client.lastUpdatePayload["weight"])
		assert.Equal(t, 22.9, f.client.lastUpdatePayload["bmi"], "derived BMI rides with the vitals")
		_, hasLab := f.client.lastUpdatePayload["hemoglobin"]
		assert.False(t, hasLab, "lab keys must never leave on a vitals save")
		// A partial save keeps the editor open.
		assert.Equal(t, constvars.EditorModeEdit, state.Mode)
	})

	t.Run("Save Publishes Event And Caches Record", func(t *testing.T) {
		f := newFixture()
		f.client.updateRecord = map[string]interface{}{}

		_, err := f.usecase.SavePatient(context.Background(), "PAT123456001", &requests.SavePatient{
			Section: "all",
			Form:    map[string]interface{}{"full_name": "Jane Doe"},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"patient-events"}, f.events.queues)
		_, cached := f.redis.store[recordCacheKey("PAT123456001")]
		assert.True(t, cached)
	})
}

func TestDeletePatient(t *testing.T) {
	t.Run("Archives Then Deletes And Publishes", func(t *testing.T) {
		f := newFixture()
		f.client.findRecord = map[string]interface{}{
			"patient_code": "PAT123456001",
			"full_name":    "Jane Doe",
		}

		err := f.usecase.DeletePatient(context.Background(), "PAT123456001")
		assert.NoError(t, err)
		assert.Len(t, f.archive.objectNames, 1)
		assert.Contains(t, f.archive.objectNames[0], "PAT123456001")
		assert.Equal(t, 1, f.client.deleteCalls)
		assert.Equal(t, []string{"patient-events"}, f.events.queues)
	})

	t.Run("Missing Record Propagates Not Found", func(t *testing.T) {
		f := newFixture()
		f.client.findErr = exceptions.ErrPatientNotFound(errors.New("no such record"))

		err := f.usecase.DeletePatient(context.Background(), "PAT000000999")
		assert.True(t, exceptions.IsNotFound(err))
		assert.Equal(t, 0, f.client.deleteCalls)
	})
}

func TestDeriveFields(t *testing.T) {
	t.Run("Weight Change Recomputes BMI In Same Update", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"height": 180.0},
			Field: "weight",
			Value: 80.0,
		})
		assert.NoError(t, err)
		assert.Equal(t, 24.7, state.Form["bmi"])
	})

	t.Run("Clearing Height Clears BMI", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"weight": 80.0, "height": 180.0, "bmi": 24.7},
			Field: "height",
			Value: nil,
		})
		assert.NoError(t, err)
		_, hasBMI := state.Form["bmi"]
		assert.False(t, hasBMI)
	})

	t.Run("Pregnancy Weeks Recomputes Trimester", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"is_pregnant": true},
			Field: "pregnancy_weeks",
			Value: 20.0,
		})
		assert.NoError(t, err)
		assert.Equal(t, "2nd Trimester", state.Form["pregnancy_trimester"])
	})

	t.Run("Date Of Birth Drives Age State", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{},
			Field: "date_of_birth",
			Value: "2024-05-22",
		})
		assert.NoError(t, err)
		assert.Equal(t, float64(10), state.Form["age_in_days"])
		assert.Equal(t, "neonate", state.Form["patient_type"])
		assert.Equal(t, "10 days (Neonate)", state.Form["age_display"])
	})

	t.Run("Editing Age Overrides Stale Day Count", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"age_in_days": 10950.0, "patient_type": "adult"},
			Field: "age",
			Value: 5.0,
		})
		assert.NoError(t, err)
		assert.Equal(t, 5.0, state.Form["age"])
		assert.Equal(t, 1825.0, state.Form["age_in_days"])
		assert.Equal(t, "child", state.Form["patient_type"])
	})

	t.Run("Editing Age In Days Overrides Stale Age", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"age": 30.0},
			Field: "age_in_days",
			Value: 100.0,
		})
		assert.NoError(t, err)
		assert.Equal(t, float64(0), state.Form["age"])
		assert.Equal(t, "infant", state.Form["patient_type"])
		assert.True(t, state.Flags.PediatricPanelOpen)
	})

	t.Run("Clearing Age Clears Day Count", func(t *testing.T) {
		f := newFixture()

		state, err := f.usecase.DeriveFields(context.Background(), &requests.DeriveField{
			Form:  map[string]interface{}{"age": 30.0, "age_in_days": 10950.0},
			Field: "age",
			Value: nil,
		})
		assert.NoError(t, err)
		_, hasAge := state.Form["age"]
		_, hasDays := state.Form["age_in_days"]
		assert.False(t, hasAge)
		assert.False(t, hasDays)
	})
}
