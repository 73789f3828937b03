package orders

const (
	// TopicOrderEvents carries every order lifecycle event.
	TopicOrderEvents = "shop.order.events"
)

// PartitionKey = order_id, so all events of one order keep their ordering.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
