package orders

import (
	"fmt"

	"github.com/abcshop/go-shop-core/internal/inventory"
)

// Status of an order. The numeric ids are part of the wire contract.
type Status int

const (
	StatusPlaced    Status = 1
	StatusDelivered Status = 2
	StatusInTransit Status = 3
	StatusCancelled Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusPlaced:
		return "PLACED"
	case StatusDelivered:
		return "DELIVERED"
	case StatusInTransit:
		return "IN_TRANSIT"
	case StatusCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) valid() bool {
	return s >= StatusPlaced && s <= StatusCancelled
}

// StatusOf maps a numeric id to its status.
func StatusOf(id int) (Status, error) {
	s := Status(id)
	if !s.valid() {
		return 0, &inventory.UnknownEnumError{Kind: "order status", ID: id}
	}
	return s, nil
}

// validNext is the order state machine. CANCELLED and DELIVERED are terminal;
// fulfillment moves PLACED -> IN_TRANSIT -> DELIVERED, cancellation moves
// PLACED or IN_TRANSIT -> CANCELLED exactly once.
var validNext = map[Status]map[Status]bool{
	StatusPlaced:    {StatusInTransit: true, StatusCancelled: true},
	StatusInTransit: {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
