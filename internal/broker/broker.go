package broker

import (
	"fmt"

	"table-orders/internal/domain"
)

// Topic names. One per table (dynamic), one per kitchen (fixed), one admin.
const TopicAdmin = "admin"

func TableTopic(tableID string) string  { return "table:" + tableID }
func KitchenTopic(kitchenID int) string { return fmt.Sprintf("kitchen:%d", kitchenID) }

// Conn is one subscriber connection. Send must not block: slow consumers are
// the transport's problem, not the publisher's.
type Conn interface {
	ID() string
	Send(ev domain.Event)
}

// TopicBroker fans events out to every connection joined to a topic at the
// moment of publish. No replay: a connection that joins later never sees
// earlier events.
type TopicBroker interface {
	// Join is idempotent; joining a topic twice is a no-op.
	Join(conn Conn, topic string)
	// Leave is idempotent; leaving a topic never joined is a no-op.
	Leave(conn Conn, topic string)
	// Publish is fire-and-forget; delivery failures are logged, never returned.
	Publish(topic string, ev domain.Event)
}
