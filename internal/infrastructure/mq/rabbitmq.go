package mq

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"docmanager-api/config"
	"docmanager-api/internal/domain/event"
	"docmanager-api/internal/infrastructure/metrics"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

type (
	InputCh  = chan event.Event
	RabbitMQ struct {
		cfg      config.MQ
		log      *zap.Logger
		conn     *amqp091.Connection
		pubCh    *amqp091.Channel
		in       InputCh
		mCounter *prometheus.CounterVec
	}
)

func New(cfg config.MQ, logger *zap.Logger, mCounter *prometheus.CounterVec) *RabbitMQ {
	return &RabbitMQ{
		cfg:      cfg,
		log:      logger,
		in:       make(chan event.Event, bufferSize),
		mCounter: mCounter,
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "docmanagerapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	var err error
	if err = r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, a := range event.Actions {
		if err = r.pubCh.QueueBind(q.Name, string(a), r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Publish never blocks a request: when the buffer is full the event is dropped and counted.
func (r *RabbitMQ) Publish(_ context.Context, e event.Event) {
	select {
	case r.in <- e:
	default:
		metrics.Inc(r.mCounter, metrics.EventsDropped)
		r.log.Warn("mq buffer full, event dropped",
			zap.String("action", string(e.Action)),
			zap.String("event_id", e.ID.String()),
		)
	}
}

// PublisherWorker leaves the input channel open; late Publish calls just fill the buffer.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				metrics.Inc(r.mCounter, metrics.EventsPublishFailure)
				r.log.Error("mq publish error", zap.Error(err), zap.String("action", string(e.Action)))
			}
		case <-ctx.Done():
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e event.Event) error {
	pub, err := toPublishing(e)
	if err != nil {
		return err
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		string(e.Action),
		false,
		false,
		pub,
	)
}

func toPublishing(e event.Event) (amqp091.Publishing, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.TS,
		Type:         string(e.Action),
		Body:         b,
	}, nil
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Nop stands in for RabbitMQ when events are disabled.
type Nop struct{}

func (Nop) Publish(context.Context, event.Event) {}
