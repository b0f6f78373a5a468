package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	authapp "github.com/dekorshop/dekorshop/internal/auth/app"
	authrest "github.com/dekorshop/dekorshop/internal/auth/rest"
	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	cartadapter "github.com/dekorshop/dekorshop/internal/cart/infra/adapter"
	cartrest "github.com/dekorshop/dekorshop/internal/cart/rest"
	catalogapp "github.com/dekorshop/dekorshop/internal/catalog/app"
	catalogsqlite "github.com/dekorshop/dekorshop/internal/catalog/infra/sqlite"
	catalogrest "github.com/dekorshop/dekorshop/internal/catalog/rest"
	checkoutapp "github.com/dekorshop/dekorshop/internal/checkout/app"
	checkoutadapter "github.com/dekorshop/dekorshop/internal/checkout/infra/adapter"
	orderapp "github.com/dekorshop/dekorshop/internal/order/app"
	orderkv "github.com/dekorshop/dekorshop/internal/order/infra/kv"
	orderrest "github.com/dekorshop/dekorshop/internal/order/rest"
	userapp "github.com/dekorshop/dekorshop/internal/user/app"
	userkv "github.com/dekorshop/dekorshop/internal/user/infra/kv"
	userrest "github.com/dekorshop/dekorshop/internal/user/rest"
	"github.com/dekorshop/dekorshop/pkg/config"
	"github.com/dekorshop/dekorshop/pkg/kvstore"
	"github.com/dekorshop/dekorshop/pkg/logger"
	"github.com/dekorshop/dekorshop/pkg/shutdown"
	"github.com/dekorshop/dekorshop/pkg/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("path", cfg.DBPath))
		os.Exit(1)
	}
	defer db.Close()

	storage := kvstore.New(db)

	// Catalog
	catalogSvc := catalogapp.NewService(catalogsqlite.NewProductRepo(db))

	// Carts, one per browsing session
	cartSessions := cartapp.NewSessions(storage, log)

	// Orders + checkout
	orderSvc := orderapp.NewService(orderkv.NewOrderRepo(storage))
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		orderSvc,
		cfg.ShippingFee,
		10,
	)

	// Users + auth
	userRepo := userkv.NewUserRepo(storage)
	userSvc := userapp.NewService(userRepo)
	authSvc := authapp.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	authMW := authrest.NewMiddleware(authSvc)

	r := mux.NewRouter()
	r.Use(authMW.Authenticate)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)

	authrest.NewHandler(authSvc).Register(r)
	catalogrest.NewHandler(catalogSvc, authMW.RequireAdmin).Register(r)
	cartrest.NewHandler(cartSessions, cartadapter.NewCatalogProductSource(catalogSvc)).Register(r)
	orderrest.NewHandler(orderSvc, checkoutSvc, cartSessions, userSvc, authMW.RequireAdmin, log).Register(r)
	userrest.NewHandler(userSvc, authMW.RequireUser).Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
