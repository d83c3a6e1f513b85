// Package memstore provides thread-safe in-memory record collections for the
// inventory API stub.
package memstore

import (
	"maps"
	"sync"

	"stockroom/internal/core/id"
)

// Record is a schemaless JSON object keyed by field name.
type Record = map[string]any

// IDField holds a record's identifier.
const IDField = "_id"

// Collection stores records in insertion order.
// Returned records are copies; mutating them does not affect the collection.
type Collection struct {
	mu    sync.RWMutex
	items map[string]Record
	order []string
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]Record)}
}

// List returns the records accepted by match, or all records when match is nil.
func (c *Collection) List(match func(Record) bool) []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, len(c.order))
	for _, key := range c.order {
		rec := c.items[key]
		if match == nil || match(rec) {
			out = append(out, maps.Clone(rec))
		}
	}
	return out
}

// Get returns the record with the given id.
func (c *Collection) Get(recordID string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.items[recordID]
	if !ok {
		return nil, false
	}
	return maps.Clone(rec), true
}

// Create stores a copy of rec, assigning an id when it has none.
func (c *Collection) Create(rec Record) Record {
	stored := maps.Clone(rec)
	if stored == nil {
		stored = Record{}
	}
	recordID, _ := stored[IDField].(string)
	if recordID == "" {
		recordID = id.New()
		stored[IDField] = recordID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[recordID]; !exists {
		c.order = append(c.order, recordID)
	}
	c.items[recordID] = stored
	return maps.Clone(stored)
}

// Update merges patch over the stored record. The id cannot be changed.
func (c *Collection) Update(recordID string, patch Record) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.items[recordID]
	if !ok {
		return nil, false
	}
	for k, v := range patch {
		if k == IDField {
			continue
		}
		rec[k] = v
	}
	return maps.Clone(rec), true
}

// Delete removes the record and reports whether it existed.
func (c *Collection) Delete(recordID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[recordID]; !ok {
		return false
	}
	delete(c.items, recordID)
	for i, key := range c.order {
		if key == recordID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Store groups the inventory collections.
type Store struct {
	Products  *Collection
	Suppliers *Collection
	StockIns  *Collection
	StockOuts *Collection
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Products:  NewCollection(),
		Suppliers: NewCollection(),
		StockIns:  NewCollection(),
		StockOuts: NewCollection(),
	}
}
