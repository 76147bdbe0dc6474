package repository

import (
	"context"
	"sync"

	"table-orders/internal/domain"
)

// CatalogMemory backs tests and the --memory development mode. Exported so
// callers can seed and mutate the menu.
type CatalogMemory struct {
	mu    sync.RWMutex
	items map[string]domain.MenuItem
}

func NewCatalogMemory(items ...domain.MenuItem) *CatalogMemory {
	c := &CatalogMemory{items: make(map[string]domain.MenuItem)}
	for _, m := range items {
		c.items[m.ID] = m
	}
	return c
}

func (c *CatalogMemory) Put(m domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[m.ID] = m
}

func (c *CatalogMemory) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

func (c *CatalogMemory) MenuItem(_ context.Context, id string) (domain.MenuItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.items[id]
	return m, ok, nil
}
