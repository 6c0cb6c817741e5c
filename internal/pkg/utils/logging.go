package utils

import (
	"medirec-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogBusinessEvent records a domain-level event (patient saved, deleted, ...)
// at info level with a stable event name for downstream log processing.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String("event", event),
		zap.String(constvars.LoggingRequestIDKey, requestID),
	}
	allFields = append(allFields, fields...)
	logger.Info("Business event", allFields...)
}
