package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderCancelled     = "OrderCancelled"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventStockRejected      = "StockRejected"
)

type Envelope struct {
	EventID       string          `json:"event_id"`   // uuid
	EventType     string          `json:"event_type"` // one of the consts above
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339, UTC
	Producer      string          `json:"producer"`    // e.g. "shop-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// ---- payload types per event ----

type OrderPlacedPayload struct {
	OrderID     string  `json:"order_id"`
	UserID      int     `json:"user_id"`
	ProductID   int     `json:"product_id"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
	Remaining   int     `json:"remaining"` // stock left after the decrement
}

type OrderCancelledPayload struct {
	OrderID   string `json:"order_id"`
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"` // stock after the restore
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type StockRejectedPayload struct {
	ProductID int    `json:"product_id"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
	Reason    string `json:"reason"` // e.g. OUT_OF_STOCK
}
