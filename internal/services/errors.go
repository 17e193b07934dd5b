package services

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP statuses with
// errors.Is; repository sentinels (not-found, out-of-stock, duplicate) pass
// through wrapped.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)
