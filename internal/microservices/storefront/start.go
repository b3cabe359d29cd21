package storefront

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"whatsmenu/internal/cart"
	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/config"
	"whatsmenu/internal/connections/rabbitmq"
	"whatsmenu/internal/delivery"
	"whatsmenu/internal/microservices/storefront/handlers"
	"whatsmenu/internal/microservices/storefront/repository"
	"whatsmenu/internal/microservices/storefront/service"
)

// Run wires the storefront service and serves HTTP until ctx is canceled.
func Run(ctx context.Context, port int, db *sql.DB, rmq *rabbitmq.Client, kv cart.KV, geo config.GeocoderConfig) error {
	lg := logger.New("storefront")

	repo := repository.New(db)
	carts := cart.NewStore(kv, lg)
	resolver := delivery.NewResolver(delivery.NewHTTPGeocoder(geo))
	svc := service.New(repo, carts, resolver, rmq)
	h := handlers.New(svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handlers.Router(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	lg.Info("http_listening", map[string]any{"addr": srv.Addr})

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
