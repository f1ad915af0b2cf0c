package rmqconsumer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"docmanager-api/config"
	"docmanager-api/internal/domain/event"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

var labels = map[string]string{
	string(event.ActionUploaded):     "DocumentUploaded",
	string(event.ActionRenamed):      "DocumentRenamed",
	string(event.ActionDeleted):      "DocumentDeleted",
	string(event.ActionBlobOrphaned): "BlobOrphaned",
}

// Consumer is the audit log of document events: one line per delivery.
type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	out        io.Writer
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		out:  os.Stdout,
		conn: conn,
	}
}

// Connect dials only when no shared connection was handed to New.
func (c *Consumer) Connect(dsn string) error {
	var err error
	if c.conn == nil {
		c.conn, err = amqp091.Dial(dsn)
		if err != nil {
			c.conn = nil
			return fmt.Errorf("amqp dial: %w", err)
		}
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		c.chConsume = nil
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	var err error
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, a := range event.Actions {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			string(a),
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", a, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	_, err := fmt.Fprintf(out,
		"Action=%s EventBody=%s\n",
		labels[msg.RoutingKey],
		string(msg.Body),
	)

	return err
}

// Close releases the consumer channel; the connection is closed by its owner.
func (c *Consumer) Close() error {
	if c.chConsume == nil {
		return nil
	}
	err := c.chConsume.Close()
	c.chConsume = nil
	if errors.Is(err, amqp091.ErrClosed) {
		return nil
	}

	return err
}
