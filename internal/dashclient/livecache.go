package dashclient

import (
	"sync"

	"treasuryd/internal/models"
)

// LiveMergeCache holds the current asset price list, keyed by asset
// name, and merges live change events into it. Rows keep their
// insertion position: an UPDATE never reorders the list, an INSERT
// appends, a DELETE closes the gap. Snapshot order is therefore stable
// across price churn, which keeps dashboard rows from jumping around.
type LiveMergeCache struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]models.AssetPrice
}

// NewLiveMergeCache creates an empty cache.
func NewLiveMergeCache() *LiveMergeCache {
	return &LiveMergeCache{rows: make(map[string]models.AssetPrice)}
}

// Seed replaces the cache contents with the given rows, in order.
// Duplicate names keep the last row but the first position.
func (c *LiveMergeCache) Seed(prices []models.AssetPrice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = c.order[:0]
	c.rows = make(map[string]models.AssetPrice, len(prices))
	for _, p := range prices {
		if _, exists := c.rows[p.Name]; !exists {
			c.order = append(c.order, p.Name)
		}
		c.rows[p.Name] = p
	}
}

// Apply merges a single change event. INSERT and UPDATE both upsert:
// an existing row is overwritten in place, a new row is appended.
// DELETE removes the named row. Events with an unknown type, or
// without the payload their type requires, are ignored.
func (c *LiveMergeCache) Apply(event models.PriceEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.EventType {
	case models.EventInsert, models.EventUpdate:
		if event.New == nil || event.New.Name == "" {
			return
		}
		if _, exists := c.rows[event.New.Name]; !exists {
			c.order = append(c.order, event.New.Name)
		}
		c.rows[event.New.Name] = *event.New

	case models.EventDelete:
		if event.Old == nil || event.Old.Name == "" {
			return
		}
		if _, exists := c.rows[event.Old.Name]; !exists {
			return
		}
		delete(c.rows, event.Old.Name)
		for i, name := range c.order {
			if name == event.Old.Name {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Snapshot returns the rows in insertion order.
func (c *LiveMergeCache) Snapshot() []models.AssetPrice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.AssetPrice, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.rows[name])
	}
	return out
}

// Len returns the number of rows.
func (c *LiveMergeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
