package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"docmanager-api/internal/domain/event"
)

type EventPublisher interface {
	Publish(ctx context.Context, e event.Event)
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
