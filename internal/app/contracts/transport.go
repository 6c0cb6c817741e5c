package contracts

import (
	"context"

	"medirec-service/internal/app/services/shared/transport"
)

type BackendTransport interface {
	Send(ctx context.Context, request *transport.Request) (*transport.Response, error)
}
