package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Services and
// handlers branch on these with errors.Is instead of matching message text.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness constraint would be
	// violated (e.g. registering an email twice).
	ErrDuplicate = errors.New("duplicate record")

	// ErrOutOfStock is returned when a conditional stock decrement matches
	// no row, i.e. the remaining stock is below the requested quantity.
	ErrOutOfStock = errors.New("insufficient stock")
)
