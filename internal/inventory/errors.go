package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product already exists")
	ErrInvalidPage      = errors.New("page and limit must be positive")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPrice     = errors.New("price must be positive")
)

// InsufficientStockError reports a reservation that asked for more units than
// the catalog currently holds. Nothing is mutated when it is returned.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: only %d available, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// UnknownEnumError reports a numeric id outside one of the closed enumerations
// (category, order status, payment mode). Unknown ids never default silently.
type UnknownEnumError struct {
	Kind string
	ID   int
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("constant not found for the %s id: %d", e.Kind, e.ID)
}
