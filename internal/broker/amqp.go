package broker

import (
	"context"
	"strings"
	"sync"
	"time"

	"table-orders/internal/common/logger"
	"table-orders/internal/connections/rabbitmq"
	"table-orders/internal/domain"
)

// AMQPBroker maps topics onto routing keys of the live topic exchange:
// table:5 -> table.5, kitchen:1 -> kitchen.1, admin -> admin. Each remote
// connection consumes its own queue, bound here on its behalf; direct replies
// go to the queue through the default exchange.
type AMQPBroker struct {
	client *rabbitmq.Client
	lg     *logger.Logger

	mu     sync.Mutex
	queues map[string]bool // conn id -> queue declared
}

func NewAMQPBroker(client *rabbitmq.Client, lg *logger.Logger) *AMQPBroker {
	return &AMQPBroker{client: client, lg: lg, queues: make(map[string]bool)}
}

func routingKey(topic string) string { return strings.ReplaceAll(topic, ":", ".") }

func connQueue(connID string) string { return "live." + connID }

func (b *AMQPBroker) ensureQueue(connID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queues[connID] {
		return nil
	}
	_, err := b.client.Channel().QueueDeclare(connQueue(connID), false, true, false, false, nil)
	if err != nil {
		return err
	}
	b.queues[connID] = true
	return nil
}

func (b *AMQPBroker) Join(conn Conn, topic string) {
	if err := b.ensureQueue(conn.ID()); err != nil {
		b.lg.Error("queue_declare_failed", err, map[string]any{"conn": conn.ID()})
		return
	}
	// QueueBind is idempotent on the broker side, matching Join's contract.
	if err := b.client.Channel().QueueBind(connQueue(conn.ID()), routingKey(topic), rabbitmq.LiveExchange, false, nil); err != nil {
		b.lg.Error("topic_join_failed", err, map[string]any{"conn": conn.ID(), "topic": topic})
	}
}

func (b *AMQPBroker) Leave(conn Conn, topic string) {
	if err := b.client.Channel().QueueUnbind(connQueue(conn.ID()), routingKey(topic), rabbitmq.LiveExchange, nil); err != nil {
		b.lg.Error("topic_leave_failed", err, map[string]any{"conn": conn.ID(), "topic": topic})
	}
}

func (b *AMQPBroker) Publish(topic string, ev domain.Event) {
	body, err := domain.EncodeEvent(ev)
	if err != nil {
		b.lg.Error("event_encode_failed", err, map[string]any{"kind": ev.Kind(), "topic": topic})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.client.Publish(ctx, rabbitmq.LiveExchange, routingKey(topic), body); err != nil {
		b.lg.Error("publish_failed", err, map[string]any{"kind": ev.Kind(), "topic": topic})
	}
}

// RemoteConn represents a client reached over AMQP; Send publishes straight
// to the connection's queue.
type RemoteConn struct {
	id     string
	broker *AMQPBroker
}

func (b *AMQPBroker) RemoteConn(id string) *RemoteConn {
	return &RemoteConn{id: id, broker: b}
}

func (c *RemoteConn) ID() string { return c.id }

func (c *RemoteConn) Send(ev domain.Event) {
	b := c.broker
	if err := b.ensureQueue(c.id); err != nil {
		b.lg.Error("queue_declare_failed", err, map[string]any{"conn": c.id})
		return
	}
	body, err := domain.EncodeEvent(ev)
	if err != nil {
		b.lg.Error("event_encode_failed", err, map[string]any{"kind": ev.Kind(), "conn": c.id})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.client.PublishToQueue(ctx, connQueue(c.id), nil, body); err != nil {
		b.lg.Error("reply_publish_failed", err, map[string]any{"kind": ev.Kind(), "conn": c.id})
	}
}
