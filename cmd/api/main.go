package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"souq-gateway/internal/config"
	"souq-gateway/internal/db"
	"souq-gateway/internal/events"
	"souq-gateway/internal/httpserver"
	"souq-gateway/internal/migrate"
	"souq-gateway/internal/notify"
	cartsvc "souq-gateway/internal/service/cart"
	wishlistsvc "souq-gateway/internal/service/wishlist"
	"souq-gateway/internal/store"
	pgstore "souq-gateway/internal/store/postgres"
	sqlitestore "souq-gateway/internal/store/sqlite"
	"souq-gateway/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[gateway] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	kv, pinger, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer cleanup()

	bus := events.New()
	notifier := notify.NewBusNotifier(bus)
	client := upstream.New(cfg.APIBaseURL, cfg.APITimeout, logger)

	cartStore := store.NewCartStore(kv)
	wishlistStore := store.NewWishlistStore(kv)
	sessionStore := store.NewSessionStore(kv)

	cartService := cartsvc.New(client, client, cartStore, sessionStore, bus, notifier, logger)
	wishlistService := wishlistsvc.New(client, wishlistStore, sessionStore, bus, notifier, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Cart:       cartService,
		Wishlist:   wishlistService,
		Products:   client,
		Sessions:   sessionStore,
		Bus:        bus,
		Store:      pinger,
		CORSOrigin: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// openStore selects a KV driver from configuration. Postgres also applies
// pending migrations; sqlite initializes its own schema on open.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store.KV, httpserver.Pinger, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return pgstore.New(pool, logger), pool, pool.Close, nil
	case "sqlite":
		kv, err := sqlitestore.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := kv.Close(); err != nil {
				logger.Printf("close sqlite store: %v", err)
			}
		}
		return kv, kv, cleanup, nil
	default:
		return store.NewMemory(), nil, func() {}, nil
	}
}
