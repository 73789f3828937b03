package orders

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrAlreadyCancelled = errors.New("order already cancelled")
)

// InvalidTransitionError reports a status change the state machine forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}

// RejectedError reports an order refused at placement. It wraps the stock
// failure so callers can errors.As into InsufficientStockError for the
// requested/available detail.
type RejectedError struct {
	ProductID int
	Err       error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("order rejected for product %d: %v", e.ProductID, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }
