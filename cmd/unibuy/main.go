package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Shanmukha18/unibuy-client/internal/config"
	"github.com/Shanmukha18/unibuy-client/internal/di"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
)

func main() {
	username := flag.String("username", "", "storefront account username")
	password := flag.String("password", "", "storefront account password")
	productID := flag.Int64("product", 0, "product id to add to the cart")
	quantity := flag.Int("quantity", 1, "quantity for -product")
	checkout := flag.Bool("checkout", false, "place an order from the cart and pay for it")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel)
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting UniBuy client...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build dependency injection container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to build container: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Close(shutdownCtx); err != nil {
			appLog.Warn(fmt.Sprintf("Shutdown error: %v", err))
		}
	}()

	if container.CallbackServer != nil {
		if err := container.CallbackServer.Start(); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to start callback server: %v", err))
		}
		appLog.Info(fmt.Sprintf("Payment callback server listening on %s", cfg.Callback.Addr()))
	}

	// Restore any persisted session before touching the API
	container.Session.Initialize(ctx)

	if *username != "" {
		if !container.Session.Login(ctx, *username, *password) {
			os.Exit(1)
		}
	}

	products, err := container.Catalog.List(ctx)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to load catalog: %v", err))
	}
	appLog.Info(fmt.Sprintf("Catalog loaded (%d products)", len(products)))

	if *productID > 0 {
		if err := container.Cart.Add(ctx, *productID, *quantity); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to add product %d: %v", *productID, err))
		}
	}

	if container.Session.IsAuthenticated() {
		appLog.Info("Cart state",
			zap.Int("items", container.Cart.ItemCount()),
			zap.Float64("total", container.Cart.Total()),
		)
	}

	if *checkout {
		runCheckout(ctx, container)
	}

	appLog.Info("Done")
}

// runCheckout places an order from the current cart and drives the
// payment flow to completion.
func runCheckout(ctx context.Context, container *di.Container) {
	appLog := logger.Get()

	order, err := container.Orders.Checkout(ctx)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Checkout failed: %v", err))
	}
	appLog.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Float64("amount", order.TotalAmount),
	)

	paid := make(chan struct{})
	err = container.Payments.Open(ctx, order.ID, order.TotalAmount, func() {
		close(paid)
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to open payment: %v", err))
	}

	if err := container.Payments.Pay(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Payment failed: %v", err))
	}

	select {
	case <-paid:
		appLog.Info("Payment confirmed", zap.Int64("order_id", order.ID))
	default:
		appLog.Info("Payment window closed without completing")
	}
}
