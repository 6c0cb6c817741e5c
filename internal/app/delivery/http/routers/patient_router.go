package routers

import (
	"medirec-service/internal/app/delivery/http/middlewares"
	"medirec-service/internal/app/services/core/patients"

	"github.com/go-chi/chi/v5"
)

func attachPatientRouter(router chi.Router, middlewares *middlewares.Middlewares, patientController *patients.PatientController) {
	router.With(middlewares.Authenticate).Get("/{patientCode}", patientController.GetPatientByCode)
	router.With(middlewares.Authenticate).Post("/{patientCode}/save", patientController.SavePatient)
	router.With(middlewares.Authenticate).Delete("/{patientCode}", patientController.DeletePatient)
	router.With(middlewares.Authenticate).Post("/derive", patientController.DeriveFields)
}
