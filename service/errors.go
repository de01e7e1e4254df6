package service

import "errors"

// Error kinds surfaced by ledger operations. The API layer maps them 1:1 to
// HTTP status codes; nothing here retries automatically.
var (
	// ErrNotFound signals an unknown id (404).
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock signals a removal larger than the on-hand quantity (400).
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateInventory signals an explicit inventory create for a product
	// that already has one (400).
	ErrDuplicateInventory = errors.New("inventory already exists for product")
	// ErrInvalidQuantity signals a non-positive quantity argument (400).
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
