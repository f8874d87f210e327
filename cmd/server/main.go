package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/config"
	"github.com/famfin/fintrack/internal/events"
	"github.com/famfin/fintrack/internal/ledger"
	"github.com/famfin/fintrack/internal/metrics"
	"github.com/famfin/fintrack/internal/middleware"
	"github.com/famfin/fintrack/internal/service"
	"github.com/famfin/fintrack/internal/storage/backend"
	"github.com/famfin/fintrack/pkg/api/apiconnect"
	"github.com/famfin/fintrack/pkg/logging"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := backend.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	facade := ledger.NewFacade(store,
		ledger.WithPublisher(publisher),
		ledger.WithLogger(logger),
	)
	if err := facade.SeedCategories(ctx, cfg.SeedCategories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	handler := newHandler(facade, jwtManager, cfg, logger)

	srv := &http.Server{
		Addr: cfg.Addr(),
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:        h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newHandler mounts both services, the metrics endpoint and the health check.
func newHandler(facade *ledger.Facade, jwtManager *auth.JWTManager, cfg *config.Config, logger *slog.Logger) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(facade, jwtManager, cfg.RegistrationPassphrase, logger),
		interceptors,
	)
	mux.Handle(authPath, authHandler)

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(
		service.NewLedgerService(facade, logger),
		interceptors,
	)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.HTTPLogging(logger, middleware.CORS(mux))
}

// newPublisher connects to the broker when AMQP_URL is set. Without it,
// budget alerts are only logged.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("Budget alert publishing disabled - no AMQP_URL provided")
		return events.Nop{}, nil
	}
	publisher, err := events.NewAMQPPublisher(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPDialAttempts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to message broker: %w", err)
	}
	logger.Info("Budget alerts publishing", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return publisher, nil
}
