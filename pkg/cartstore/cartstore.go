// Package cartstore implements the client-held shopping cart as an explicit
// state machine: an ordered collection of lines with derived totals,
// persisted as one JSON snapshot under a fixed namespace key. It is
// independent of any UI framework; callers drive it with the four
// transitions and read the derived values back.
//
// The store is single-threaded by contract. Every transition is a complete
// state change followed by a persistence snapshot; no two transitions
// interleave.
package cartstore

import (
	"encoding/json"
	"log"
)

// StorageKey is the fixed namespace under which the cart snapshot is
// persisted.
const StorageKey = "greenleaf.cart"

// Item is one cart line. StockQuantity is the stock snapshot captured when
// the product was added; quantities are clamped against it, not against
// live server stock.
type Item struct {
	ProductID     string  `json:"product_id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity"`
	Quantity      int     `json:"quantity"`
}

// Storage persists one opaque blob per key. Implementations stand in for
// the browser's local storage.
type Storage interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

// Store is the cart state machine.
type Store struct {
	items     []Item
	total     float64
	itemCount int
	storage   Storage
	loaded    bool
}

// New creates a Store and synchronously loads the persisted snapshot. A
// missing or unparseable snapshot yields an empty cart; the store is marked
// loaded either way.
func New(storage Storage) *Store {
	s := &Store{storage: storage}
	s.load()
	s.loaded = true
	return s
}

func (s *Store) load() {
	if s.storage == nil {
		return
	}
	data, ok, err := s.storage.Load(StorageKey)
	if err != nil || !ok {
		if err != nil {
			log.Printf("Failed to load cart snapshot: %v", err)
		}
		return
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Discarding corrupt cart snapshot: %v", err)
		return
	}
	s.items = items
	s.recompute()
}

// persist snapshots the full item collection. Only runs once the initial
// load has completed, so loading can never clobber a newer snapshot.
func (s *Store) persist() {
	if s.storage == nil || !s.loaded {
		return
	}
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("Failed to marshal cart snapshot: %v", err)
		return
	}
	if err := s.storage.Save(StorageKey, data); err != nil {
		log.Printf("Failed to save cart snapshot: %v", err)
	}
}

func (s *Store) recompute() {
	s.total = 0
	s.itemCount = 0
	for _, item := range s.items {
		s.total += item.Price * float64(item.Quantity)
		s.itemCount += item.Quantity
	}
}

func clamp(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

// AddItem merges quantity into an existing line or appends a new one. A
// line's quantity never exceeds the stock snapshot and never drops below 1.
func (s *Store) AddItem(item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity = clamp(s.items[i].Quantity+quantity, s.items[i].StockQuantity)
			s.recompute()
			s.persist()
			return
		}
	}
	item.Quantity = clamp(quantity, item.StockQuantity)
	s.items = append(s.items, item)
	s.recompute()
	s.persist()
}

// RemoveItem deletes the line for a product. Unknown IDs are a no-op.
func (s *Store) RemoveItem(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.recompute()
	s.persist()
}

// UpdateQuantity sets a line's quantity. A non-positive quantity removes
// the line; anything else is clamped to [1, stock snapshot].
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = clamp(quantity, s.items[i].StockQuantity)
			break
		}
	}
	s.recompute()
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.items = nil
	s.recompute()
	s.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the derived sum of price times quantity across all lines.
func (s *Store) Total() float64 {
	return s.total
}

// ItemCount is the derived sum of quantities across all lines.
func (s *Store) ItemCount() int {
	return s.itemCount
}

// Loaded reports whether the initial snapshot load has completed.
func (s *Store) Loaded() bool {
	return s.loaded
}
