package contracts

import (
	"context"

	"medirec-service/internal/pkg/dto/requests"
	"medirec-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	GetPatientByCode(ctx context.Context, patientCode string) (*responses.PatientEditorState, error)
	SavePatient(ctx context.Context, patientCode string, request *requests.SavePatient) (*responses.PatientEditorState, error)
	DeletePatient(ctx context.Context, patientCode string) error
	DeriveFields(ctx context.Context, request *requests.DeriveField) (*responses.PatientEditorState, error)
}

type PatientRecordsClient interface {
	FindPatientByCode(ctx context.Context, patientCode string) (map[string]interface{}, error)
	CreatePatient(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error)
	UpdatePatient(ctx context.Context, patientCode string, payload map[string]interface{}) (map[string]interface{}, error)
	DeletePatient(ctx context.Context, patientCode string) error
}
