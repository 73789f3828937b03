package stocksync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/abcshop/go-shop-core/internal/kafka"
	"github.com/abcshop/go-shop-core/internal/orders"
	"github.com/abcshop/go-shop-core/internal/redisx"
)

// Service projects order lifecycle events into redis: a per-product stock
// snapshot and a per-order status cache. Both are read-side caches; the
// in-process catalog stays the source of truth for quantity.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent is the consumer handler for the order events topic.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// Dedup on event id so redelivery never reapplies a snapshot.
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}

	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		if err := s.setStock(ctx, p.ProductID, p.Remaining); err != nil {
			return err
		}
		if err := s.setStatus(ctx, p.OrderID, orders.StatusPlaced); err != nil {
			return err
		}
	case orders.EventOrderCancelled:
		p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
		if err != nil {
			return err
		}
		if err := s.setStock(ctx, p.ProductID, p.Remaining); err != nil {
			return err
		}
		if err := s.setStatus(ctx, p.OrderID, orders.StatusCancelled); err != nil {
			return err
		}
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		key := fmt.Sprintf(redisx.KeyOrderStatus, p.OrderID)
		if err := s.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, p.Status), redisx.TTLStatusCache).Err(); err != nil {
			return err
		}
	case orders.EventStockRejected:
		p, err := kafkax.UnwrapPayload[orders.StockRejectedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("stock rejected: product=%d required=%d available=%d", p.ProductID, p.Required, p.Available)
	default:
		// Unknown event types are skipped, not failed, so a newer producer
		// does not wedge this consumer.
		log.Printf("skipping unknown event type %q", env.EventType)
	}

	return s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
}

func (s *Service) setStock(ctx context.Context, productID, remaining int) error {
	key := fmt.Sprintf(redisx.KeyStockQty, productID)
	return s.Redis.Set(ctx, key, remaining, redisx.TTLStockQty).Err()
}

func (s *Service) setStatus(ctx context.Context, orderID string, status orders.Status) error {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	return s.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status.String()), redisx.TTLStatusCache).Err()
}
