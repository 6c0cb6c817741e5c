package contracts

import "context"

type EventPublisher interface {
	Publish(ctx context.Context, queueName string, payload interface{}) error
}
