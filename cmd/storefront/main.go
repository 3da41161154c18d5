package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atelierlabs/storefront/internal/addresses"
	"github.com/atelierlabs/storefront/internal/auth"
	"github.com/atelierlabs/storefront/internal/cart"
	"github.com/atelierlabs/storefront/internal/catalog"
	"github.com/atelierlabs/storefront/internal/checkout"
	"github.com/atelierlabs/storefront/internal/orders"
	"github.com/atelierlabs/storefront/internal/settings"
	"github.com/atelierlabs/storefront/pkg/config"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/metrics"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/atelierlabs/storefront/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := storage.New(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open local storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(ctx, "error closing local storage", err)
		}
	}()

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	app, err := buildApp(ctx, cfg, store, requestMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap services", err)
		os.Exit(1)
	}

	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	log       *logger.Logger
	auth      *auth.Service
	cart      *cart.Service
	catalog   *catalog.Service
	checkout  *checkout.Service
	settings  *settings.Service
	orders    *orders.Service
	addresses *addresses.Service
}

func buildApp(ctx context.Context, cfg *config.Config, store storage.Store, m *metrics.RequestMetrics, logg *logger.Logger) (*app, error) {
	cartSvc, err := cart.NewService(ctx, store, logg)
	if err != nil {
		return nil, err
	}

	var authSvc *auth.Service
	client, err := shopapi.NewClient(cfg.API.BaseURL,
		shopapi.WithTimeout(cfg.API.Timeout),
		shopapi.WithMetrics(m),
		shopapi.WithTokenSource(shopapi.TokenSourceFunc(func() string {
			if authSvc == nil {
				return ""
			}
			return authSvc.Token()
		})),
	)
	if err != nil {
		return nil, err
	}

	authSvc, err = auth.NewService(ctx, client, store, logg)
	if err != nil {
		return nil, err
	}
	settingsSvc, err := settings.NewService(client, logg)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(client, logg)
	if err != nil {
		return nil, err
	}
	checkoutSvc, err := checkout.NewService(client, cartSvc, settingsSvc, logg)
	if err != nil {
		return nil, err
	}
	ordersSvc, err := orders.NewService(client, settingsSvc, logg)
	if err != nil {
		return nil, err
	}
	addressSvc, err := addresses.NewService(client, logg)
	if err != nil {
		return nil, err
	}

	return &app{
		log:       logg,
		auth:      authSvc,
		cart:      cartSvc,
		catalog:   catalogSvc,
		checkout:  checkoutSvc,
		settings:  settingsSvc,
		orders:    ordersSvc,
		addresses: addressSvc,
	}, nil
}
