package gateway

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/connections/rabbitmq"
)

var errMalformed = errors.New("malformed action")

// Consumer drains the client action queue and feeds the dispatcher. Each
// delivery carries the originating connection id in the x-conn-id header;
// replies and topic membership are resolved against that id.
type Consumer struct {
	client     *rabbitmq.Client
	amqpBroker *broker.AMQPBroker
	dispatcher *Dispatcher
	prefetch   int
	lg         *logger.Logger
}

func NewConsumer(client *rabbitmq.Client, amqpBroker *broker.AMQPBroker,
	dispatcher *Dispatcher, prefetch int, lg *logger.Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{
		client: client, amqpBroker: amqpBroker,
		dispatcher: dispatcher, prefetch: prefetch, lg: lg,
	}
}

// Run consumes until ctx is canceled. Malformed actions go to the DLQ;
// anything else that fails is requeued.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.client.Consume(rabbitmq.ActionsQueue, "table-orders-gateway", c.prefetch)
	if err != nil {
		return fmt.Errorf("consume %s: %w", rabbitmq.ActionsQueue, err)
	}
	c.lg.Info("gateway_consuming", map[string]any{
		"queue": rabbitmq.ActionsQueue, "prefetch": c.prefetch,
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("action channel closed")
			}
			switch err := c.processOne(ctx, d); {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, errMalformed):
				_ = d.Nack(false, false) // dead-letter, will never parse
			default:
				_ = d.Nack(false, true)
			}
		}
	}
}

func (c *Consumer) processOne(ctx context.Context, d amqp.Delivery) error {
	connID, _ := d.Headers["x-conn-id"].(string)
	if connID == "" {
		c.lg.Error("action_without_conn", errMalformed, nil)
		return errMalformed
	}
	conn := c.amqpBroker.RemoteConn(connID)
	if err := c.dispatcher.Handle(ctx, conn, d.Body); err != nil {
		c.lg.Error("action_rejected", err, map[string]any{"conn": connID})
		return fmt.Errorf("%w: %w", errMalformed, err)
	}
	return nil
}
