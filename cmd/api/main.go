package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/abcshop/go-shop-core/internal/cart"
	"github.com/abcshop/go-shop-core/internal/config"
	"github.com/abcshop/go-shop-core/internal/httpx"
	"github.com/abcshop/go-shop-core/internal/inventory"
	kafkax "github.com/abcshop/go-shop-core/internal/kafka"
	"github.com/abcshop/go-shop-core/internal/orders"
	"github.com/abcshop/go-shop-core/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog + stock coordinator, seeded from the inventory files when set.
	catalog := inventory.NewCatalog()
	stock := inventory.NewCoordinator(catalog)
	if cfg.InventoryPath != "" {
		products, err := inventory.LoadSeed(cfg.InventoryPath)
		if err != nil {
			log.Fatalf("load seed: %v", err)
		}
		added := 0
		for _, res := range catalog.AddProducts(products) {
			if res.Err == nil {
				added++
			}
		}
		log.Printf("seeded catalog: %d products", added)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order lifecycle events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Stores & ledger
	cartStore := cart.NewStore(catalog, stock)
	wishlist := cart.NewWishlist(catalog)
	ledger := orders.NewLedger(catalog, stock, prod, cfg.ServiceName)

	router := httpx.NewRouter()
	h := &httpx.Handler{
		Catalog:  catalog,
		Stock:    stock,
		Cart:     cartStore,
		Wishlist: wishlist,
		Ledger:   ledger,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit: %v", err)
	}
	prod.Close() // flush remaining events
	prod.WaitClosed()
}
