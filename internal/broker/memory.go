package broker

import (
	"sync"

	"table-orders/internal/domain"
)

// MemoryBroker is the in-process TopicBroker: a registry of topic membership
// guarded by one RWMutex.
type MemoryBroker struct {
	mu     sync.RWMutex
	topics map[string]map[string]Conn // topic -> conn id -> conn
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{topics: make(map[string]map[string]Conn)}
}

func (b *MemoryBroker) Join(conn Conn, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[string]Conn)
		b.topics[topic] = subs
	}
	subs[conn.ID()] = conn
}

func (b *MemoryBroker) Leave(conn Conn, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[topic]
	if !ok {
		return
	}
	delete(subs, conn.ID())
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
}

// Disconnect removes the connection from every topic.
func (b *MemoryBroker) Disconnect(conn Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for topic, subs := range b.topics {
		delete(subs, conn.ID())
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
	}
}

func (b *MemoryBroker) Publish(topic string, ev domain.Event) {
	b.mu.RLock()
	subs := make([]Conn, 0, len(b.topics[topic]))
	for _, c := range b.topics[topic] {
		subs = append(subs, c)
	}
	b.mu.RUnlock()

	// Delivery happens outside the lock against the membership snapshot taken
	// at publish time.
	for _, c := range subs {
		c.Send(ev)
	}
}

// ChanConn is a Conn backed by a buffered channel. Send drops the event when
// the buffer is full rather than block the publisher.
type ChanConn struct {
	id     string
	events chan domain.Event
}

func NewChanConn(id string, buffer int) *ChanConn {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChanConn{id: id, events: make(chan domain.Event, buffer)}
}

func (c *ChanConn) ID() string { return c.id }

func (c *ChanConn) Events() <-chan domain.Event { return c.events }

func (c *ChanConn) Send(ev domain.Event) {
	select {
	case c.events <- ev:
	default: // consumer stalled, drop
	}
}
