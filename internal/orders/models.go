package orders

import "time"

type Order struct {
	ID          string      `json:"id"`
	UserID      int         `json:"user_id"`
	ProductID   int         `json:"product_id"`
	Quantity    int         `json:"quantity"`
	TotalAmount float64     `json:"total_amount"` // quantity * unit price at order time, immutable
	Address     string      `json:"address"`
	PaymentMode PaymentMode `json:"payment_mode"`
	Status      Status      `json:"status"`
	PlacedAt    time.Time   `json:"placed_at"`
}
