package redisx

import "time"

const (
	// Stock snapshot per product: stock:qty:{product_id} -> remaining quantity.
	// A cache for dashboards and the HTTP read path, never the source of truth.
	KeyStockQty = "stock:qty:%d"

	// Cached order status: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStockQty    = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
