package events

import (
	"context"

	"medirec-service/internal/app/contracts"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type rabbitMQPublisher struct {
	Channel *amqp091.Channel
}

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection) (contracts.EventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{Channel: channel}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, queueName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = p.Channel.PublishWithContext(ctx, "", queueName, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	return nil
}
