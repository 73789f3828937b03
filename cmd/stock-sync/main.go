package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abcshop/go-shop-core/internal/config"
	kafkax "github.com/abcshop/go-shop-core/internal/kafka"
	"github.com/abcshop/go-shop-core/internal/orders"
	"github.com/abcshop/go-shop-core/internal/redisx"
	"github.com/abcshop/go-shop-core/internal/stocksync"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &stocksync.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-stock-sync",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.SyncGroup, orders.TopicOrderEvents, cfg.SyncWorkers)

	log.Printf("stock-sync consumer started: group=%s topic=%s workers=%d",
		cfg.SyncGroup, orders.TopicOrderEvents, cfg.SyncWorkers)
	if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
		log.Printf("consumer exit: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
}
