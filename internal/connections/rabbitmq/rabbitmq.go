package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"table-orders/internal/config"
)

// Topology shared by the live event stream and the client action queue.
const (
	LiveExchange = "orders_live" // topic exchange carrying derived events
	ActionsQueue = "actions.q"   // client actions consumed by the gateway
	DLXExchange  = "dlx"
	DLQQueue     = "dlq"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Channel() *amqp.Channel { return c.ch }

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology declares exchanges and queues idempotently.
func (c *Client) DeclareTopology() error {
	if c == nil || c.ch == nil {
		return errors.New("nil channel")
	}
	if err := c.ch.ExchangeDeclare(LiveExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", LiveExchange, err)
	}
	if err := c.ch.ExchangeDeclare(DLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLXExchange, err)
	}
	if _, err := c.ch.QueueDeclare(ActionsQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DLXExchange,
		"x-dead-letter-routing-key": DLQQueue,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", ActionsQueue, err)
	}
	if _, err := c.ch.QueueDeclare(DLQQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLQQueue, err)
	}
	if err := c.ch.QueueBind(DLQQueue, DLQQueue, DLXExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", DLQQueue, err)
	}
	return nil
}

// Publish sends one JSON message to an exchange. Live events are transient;
// there is no replay, so persisting them buys nothing.
func (c *Client) Publish(ctx context.Context, exchange, key string, body []byte) error {
	return c.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Transient,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// PublishToQueue sends directly to a named queue via the default exchange.
func (c *Client) PublishToQueue(ctx context.Context, queue string, headers amqp.Table, body []byte) error {
	return c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         body,
	})
}

func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}
