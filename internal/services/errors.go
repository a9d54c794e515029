package services

import (
	"errors"
	"time"
)

// Service errors. Handlers map them to HTTP responses with errors.Is.
var (
	ErrValidation            = errors.New("validation error")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrMenuItemNotFound      = errors.New("menu item not found")
	ErrTableNotFound         = errors.New("table not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrDraftNotFound         = errors.New("draft not found")
	ErrOrderItemNotFound     = errors.New("order item not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrTableOccupied         = errors.New("table is occupied")
	ErrTableNotAvailable     = errors.New("table is not available")
	ErrNameConflict          = errors.New("name already in use")
)

var notFoundErrors = []error{
	ErrInventoryItemNotFound, ErrMenuItemNotFound, ErrTableNotFound, ErrOrderNotFound,
	ErrDraftNotFound, ErrOrderItemNotFound, ErrSaleNotFound, ErrUserNotFound,
}

// IsNotFound reports whether err wraps any of the not-found errors.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// timeNow is swapped in tests.
var timeNow = time.Now
