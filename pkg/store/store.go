// Package store holds the loaded item collection for the lifetime of a
// session. A Store is populated once and never mutated afterwards; a new
// data payload means a new Store.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/partialepoch/epochdb/pkg/models"
)

// LoadError reports a payload that is not a well-formed sequence of items
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load items: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to load items: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store is the immutable, load-ordered item collection
type Store struct {
	items    []models.Item
	byID     map[int]int
	checksum uint64
}

var emptyStore = &Store{byID: map[int]int{}}

// Empty returns the shared store with no items. A session whose load failed
// keeps working against it.
func Empty() *Store {
	return emptyStore
}

// Load decodes a JSON array of item records. Loading is all-or-nothing: any
// malformed record fails the whole payload.
func Load(raw []byte) (*Store, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &LoadError{Reason: "empty payload"}
	}
	if trimmed[0] != '[' {
		return nil, &LoadError{Reason: "payload is not an array"}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &LoadError{Reason: "malformed JSON", Err: err}
	}

	items := make([]models.Item, len(records))
	byID := make(map[int]int, len(records))
	for i, record := range records {
		if err := decodeItem(record, &items[i]); err != nil {
			return nil, &LoadError{Reason: fmt.Sprintf("record %d", i), Err: err}
		}
		if prev, dup := byID[items[i].ID]; dup {
			return nil, &LoadError{Reason: fmt.Sprintf("record %d reuses id %d of record %d", i, items[i].ID, prev)}
		}
		byID[items[i].ID] = i
	}

	return &Store{
		items:    items,
		byID:     byID,
		checksum: xxhash.Sum64(raw),
	}, nil
}

// decodeItem decodes a single record, requiring it to be a JSON object
func decodeItem(record json.RawMessage, item *models.Item) error {
	trimmed := bytes.TrimSpace(record)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("item record is not an object")
	}
	return json.Unmarshal(trimmed, item)
}

// Len returns the number of items
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the store holds no items
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Items returns the items in load order. The returned slice is a copy; the
// store itself cannot be modified through it.
func (s *Store) Items() []models.Item {
	if s == nil {
		return nil
	}
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks an item up by id
func (s *Store) Get(id int) (models.Item, bool) {
	if s == nil {
		return models.Item{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return s.items[idx], true
}

// Checksum returns the xxhash of the payload the store was loaded from.
// Two stores with the same checksum hold the same data.
func (s *Store) Checksum() uint64 {
	if s == nil {
		return 0
	}
	return s.checksum
}
