package healthcheck

import (
	"context"
	"net/http"
	"time"

	"medirec-service/internal/app/contracts"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log           *zap.Logger
	HealthService contracts.RecordsHealthService
}

func NewHealthController(logger *zap.Logger, healthService contracts.RecordsHealthService) *HealthController {
	return &HealthController{
		Log:           logger,
		HealthService: healthService,
	}
}

// GetHealth reports the service as alive and includes the reachability of
// the records backend; an offline backend does not fail the endpoint.
func (ctrl *HealthController) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	backendStatus := "online"
	if err := ctrl.HealthService.CheckHealth(ctx); err != nil {
		backendStatus = "offline"
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccess, map[string]interface{}{
		"service":         "ok",
		"records_backend": backendStatus,
	})
}
