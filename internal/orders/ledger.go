package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/abcshop/go-shop-core/internal/inventory"
	kafkax "github.com/abcshop/go-shop-core/internal/kafka"
)

// Publisher is satisfied by kafkax.Producer. A nil publisher disables event
// emission; the ledger's stock and status guarantees never depend on it.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Ledger is the durable record of placed and cancelled orders. It owns the
// order state machine: every stock decrement happens through PlaceOrder and
// every restore through CancelOrder, so the two stay an atomic pair.
type Ledger struct {
	mu     sync.RWMutex
	byID   map[string]*Order
	byUser map[int][]string // order ids, insertion order

	catalog *inventory.Catalog
	stock   *inventory.Coordinator
	pub     Publisher
	service string
}

func NewLedger(catalog *inventory.Catalog, stock *inventory.Coordinator, pub Publisher, service string) *Ledger {
	return &Ledger{
		byID:    make(map[string]*Order),
		byUser:  make(map[int][]string),
		catalog: catalog,
		stock:   stock,
		pub:     pub,
		service: service,
	}
}

// PlaceOrder reserves quantity units and records the order as PLACED, as one
// atomic unit: the order only exists once the decrement succeeded, and an
// insufficient-stock refusal leaves no trace. The total is computed from the
// catalog's unit price at this moment and never changes afterwards.
func (l *Ledger) PlaceOrder(userID, productID, quantity int, address string, mode PaymentMode) (Order, error) {
	if quantity <= 0 {
		return Order{}, inventory.ErrInvalidQuantity
	}
	if !mode.valid() {
		return Order{}, &inventory.UnknownEnumError{Kind: "payment mode", ID: int(mode)}
	}
	product, err := l.catalog.Get(productID)
	if err != nil {
		return Order{}, err
	}

	remaining, err := l.stock.ReserveAndDecrement(productID, quantity)
	if err != nil {
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			l.publishRejected(insufficient)
			return Order{}, &RejectedError{ProductID: productID, Err: err}
		}
		return Order{}, err
	}

	order := Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: float64(quantity) * product.Price,
		Address:     address,
		PaymentMode: mode,
		Status:      StatusPlaced,
		PlacedAt:    time.Now().UTC(),
	}

	l.mu.Lock()
	l.byID[order.ID] = &order
	l.byUser[userID] = append(l.byUser[userID], order.ID)
	l.mu.Unlock()

	l.publish(EventOrderPlaced, order.ID, OrderPlacedPayload{
		OrderID:     order.ID,
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: order.TotalAmount,
		Remaining:   remaining,
	})
	return order, nil
}

// CancelOrder restores the reserved quantity and flips the order to
// CANCELLED. The already-cancelled guard makes the restore run at most once
// per order; the restore and the status flip happen under the ledger lock so
// no caller ever observes one without the other.
func (l *Ledger) CancelOrder(orderID string) (Order, error) {
	l.mu.Lock()
	order, ok := l.byID[orderID]
	if !ok {
		l.mu.Unlock()
		return Order{}, ErrNotFound
	}
	if order.Status == StatusCancelled {
		l.mu.Unlock()
		return Order{}, ErrAlreadyCancelled
	}
	if !CanTransition(order.Status, StatusCancelled) {
		from := order.Status
		l.mu.Unlock()
		return Order{}, &InvalidTransitionError{From: from, To: StatusCancelled}
	}

	remaining, err := l.stock.Restore(order.ProductID, order.Quantity)
	if err != nil {
		l.mu.Unlock()
		return Order{}, err
	}
	order.Status = StatusCancelled
	cancelled := *order
	l.mu.Unlock()

	l.publish(EventOrderCancelled, cancelled.ID, OrderCancelledPayload{
		OrderID:   cancelled.ID,
		ProductID: cancelled.ProductID,
		Quantity:  cancelled.Quantity,
		Remaining: remaining,
	})
	return cancelled, nil
}

// AdvanceStatus applies an external fulfillment transition (IN_TRANSIT,
// DELIVERED). It never touches stock and can never leave a terminal status.
func (l *Ledger) AdvanceStatus(orderID string, next Status) (Order, error) {
	if !next.valid() {
		return Order{}, &inventory.UnknownEnumError{Kind: "order status", ID: int(next)}
	}
	l.mu.Lock()
	order, ok := l.byID[orderID]
	if !ok {
		l.mu.Unlock()
		return Order{}, ErrNotFound
	}
	// Cancellation goes through CancelOrder so stock is restored.
	if next == StatusCancelled || !CanTransition(order.Status, next) {
		from := order.Status
		l.mu.Unlock()
		return Order{}, &InvalidTransitionError{From: from, To: next}
	}
	order.Status = next
	updated := *order
	l.mu.Unlock()

	l.publish(EventOrderStatusChanged, updated.ID, OrderStatusChangedPayload{
		OrderID: updated.ID,
		Status:  updated.Status.String(),
	})
	return updated, nil
}

// GetOrder returns a copy of the order.
func (l *Ledger) GetOrder(orderID string) (Order, error) {
	l.mu.RLock()
	order, ok := l.byID[orderID]
	if !ok {
		l.mu.RUnlock()
		return Order{}, ErrNotFound
	}
	out := *order
	l.mu.RUnlock()
	return out, nil
}

// ListOrders returns the user's orders in insertion order (oldest first),
// paginated.
func (l *Ledger) ListOrders(userID, page, limit int) ([]Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byUser[userID]
	start, end, err := inventory.PageBounds(len(ids), page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, *l.byID[id])
	}
	return out, nil
}

func (l *Ledger) publish(eventType, orderID string, payload any) {
	if l.pub == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      l.service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	l.pub.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (l *Ledger) publishRejected(insufficient *inventory.InsufficientStockError) {
	if l.pub == nil {
		return
	}
	ev := Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventStockRejected,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     l.service,
		Payload: kafkax.MustMarshal(StockRejectedPayload{
			ProductID: insufficient.ProductID,
			Required:  insufficient.Requested,
			Available: insufficient.Available,
			Reason:    "OUT_OF_STOCK",
		}),
	}
	l.pub.Publish(nil, kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventStockRejected)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
