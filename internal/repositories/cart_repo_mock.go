package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"greenleaf/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	lines map[string][]models.CartLine // keyed by user ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string][]models.CartLine),
	}
}

// GetLines returns all cart lines for a user, oldest first.
func (r *MockCartRepository) GetLines(userID string) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]models.CartLine, len(r.lines[userID]))
	copy(lines, r.lines[userID])
	sort.Slice(lines, func(i, j int) bool { return lines[i].CreatedAt.Before(lines[j].CreatedAt) })
	return lines, nil
}

// Upsert inserts a cart line or replaces the quantity of an existing one.
func (r *MockCartRepository) Upsert(line *models.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userLines := r.lines[line.UserID]
	for i := range userLines {
		if userLines[i].ProductID == line.ProductID {
			userLines[i].Quantity = line.Quantity
			userLines[i].UpdatedAt = time.Now()
			*line = userLines[i]
			return nil
		}
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.CreatedAt = time.Now()
	line.UpdatedAt = line.CreatedAt
	r.lines[line.UserID] = append(userLines, *line)
	return nil
}

// Remove deletes a single product line from a user's cart.
func (r *MockCartRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userLines := r.lines[userID]
	for i := range userLines {
		if userLines[i].ProductID == productID {
			r.lines[userID] = append(userLines[:i], userLines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart line %s/%s: %w", userID, productID, ErrNotFound)
}

// Clear deletes all cart lines for a user.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, userID)
	return nil
}
