package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/utils"
	"storefront/internal/web"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, cfg.LogFile)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	var store cache.Store
	if cfg.CacheEnabled() {
		rs, err := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.L().Warn("catalog cache disabled", zap.Error(err))
		} else {
			defer rs.Close()
			store = rs
		}
	}

	handler, err := newServer(cfg, database, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.L().Info("storefront running", zap.String("port", cfg.AppPort))
	return startServerFunc(ctx, ":"+cfg.AppPort, handler)
}

// newServer wires repositories, services and middleware into one handler.
// A nil store serves the catalog straight from the database.
func newServer(cfg *config.Config, database *sqlx.DB, store cache.Store) (http.Handler, error) {
	productRepo := product.NewRepository(database)
	if store != nil {
		productRepo = product.NewCachedRepository(productRepo, store, cfg.CatalogCacheTTL)
	}
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	h, err := web.NewHandler(productSvc, orderSvc, metrics.NewRegistry(), cfg.LoginPath)
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	return middleware.Chain(setupRouter(h, cfg),
		logger.RequestIDMiddleware,
		middleware.AuthMiddleware([]byte(cfg.SecretKey)),
		logger.LoggingMiddleware(requestUserID),
		limiter.Middleware,
	), nil
}

func setupRouter(h *web.Handler, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	guard := middleware.RequireSession(cfg.LoginPath)

	mux.HandleFunc("GET /product", h.ProductPage)
	mux.Handle("GET /orders", guard(http.HandlerFunc(h.OrderHistory)))
	mux.Handle("GET /confirmation", guard(http.HandlerFunc(h.Confirmation)))
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))

	return mux
}

func requestUserID(r *http.Request) (int64, bool) {
	return utils.GetUserIDFromContext(r.Context())
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
