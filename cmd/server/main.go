package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/receipts/backend/internal/application/command"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/infrastructure/auth"
	"github.com/receipts/backend/internal/infrastructure/cache"
	"github.com/receipts/backend/internal/infrastructure/config"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"github.com/receipts/backend/internal/infrastructure/persistence"
	"github.com/receipts/backend/internal/infrastructure/telemetry"
	"github.com/receipts/backend/internal/interfaces/http/handler"
	"github.com/receipts/backend/internal/interfaces/http/middleware"
	"github.com/receipts/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//	@title			Receipts API
//	@version		1.0
//	@description	Records purchase receipts and the currencies, stores and products they reference.
//	@description	Writes are queued and answered with a ticket that can be polled under /commands.

//	@host		localhost:3000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						id

const serviceVersion = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "receipts:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry comes first so the logger can bridge into the OTLP log exporter
	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	tel, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, tel.LogCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting receipts backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", serviceVersion),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	meter := tel.Meter("receipts")
	dbMetrics, err := telemetry.InstrumentDatabase(db.DB, meter, telemetry.DBConfig{
		TracingEnabled:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		TracerProvider:  tel.TracerProvider(),
	}, log)
	if err != nil {
		return fmt.Errorf("failed to instrument database: %w", err)
	}
	dbMetrics.StartPoolStatsCollection(ctx)
	defer dbMetrics.Stop()

	// Repositories
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	customizedRepo := persistence.NewGormCustomizedInventoryRepository(db.DB)

	// Services
	currencyService := receiptapp.NewCurrencyService(currencyRepo)
	storeService := receiptapp.NewStoreService(storeRepo)
	productService := receiptapp.NewProductService(productRepo)
	inventoryService := receiptapp.NewInventoryService(inventoryRepo, customizedRepo)
	receiptService := receiptapp.NewReceiptService(receiptRepo, inventoryRepo, currencyRepo, storeRepo, productRepo)
	if cfg.Queue.Transactional {
		receiptService.SetTransactor(db)
		log.Info("Receipt writes run in a single transaction")
	}

	// Write queue
	results, err := cache.NewResultStoreFactory(cfg.Queue.ResultStore, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		return err
	}
	if results != nil {
		defer func() {
			if err := results.Close(); err != nil {
				log.Warn("Error closing command result store", zap.Error(err))
			}
		}()
	}

	commandMetrics, err := telemetry.NewCommandMetrics(meter, log)
	if err != nil {
		return fmt.Errorf("failed to create command metrics: %w", err)
	}
	defer commandMetrics.Stop()

	executor := command.NewExecutor(receiptService, currencyService, storeService, productService, inventoryService)
	dispatcherOpts := []command.Option{
		command.WithObserver(commandMetrics),
		command.WithTracer(tel.Tracer("receipts/command")),
	}
	if results != nil {
		dispatcherOpts = append(dispatcherOpts, command.WithResultStore(results))
	}
	dispatcher := command.NewDispatcher(executor, command.Config{
		Capacity:         cfg.Queue.Capacity,
		ExecutionTimeout: cfg.Queue.ExecutionTimeout,
		ResultTTL:        cfg.Queue.ResultTTL,
	}, log.Named("dispatcher"), dispatcherOpts...)
	if err := dispatcher.Start(ctx); err != nil {
		return err
	}
	commandMetrics.StartQueueSampling(ctx, dispatcher, 0)

	// Sessions
	sessionStore, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()
	sessions := auth.NewSessionService(
		auth.Credentials{Username: cfg.Session.Username, PasswordHash: cfg.Session.PasswordHash},
		auth.NewTokenService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer),
		sessionStore,
		cfg.Session.KeyLength,
		log.Named("session"),
	)
	loginLimiter := middleware.NewRateLimiter(cfg.Session.LoginRate, cfg.Session.LoginBurst, 10*time.Minute)
	defer loginLimiter.Stop()

	engine, err := router.New(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		TracerProvider: tel.TracerProvider(),
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			AllowCredentials: true,
		},
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CookieName:     cfg.Session.CookieName,
	}, router.Handlers{
		Currency:            handler.NewCurrencyHandler(currencyService, dispatcher),
		Store:               handler.NewStoreHandler(storeService, dispatcher),
		Product:             handler.NewProductHandler(productService, dispatcher),
		Inventory:           handler.NewInventoryHandler(inventoryService, dispatcher),
		Receipt:             handler.NewReceiptHandler(receiptService, dispatcher),
		CustomizedInventory: handler.NewCustomizedInventoryHandler(inventoryService),
		Command:             handler.NewCommandHandler(dispatcher),
		Auth: handler.NewAuthHandler(sessions, handler.CookieConfig{
			Name:     cfg.Session.CookieName,
			Domain:   cfg.Cookie.Domain,
			Path:     cfg.Cookie.Path,
			Secure:   cfg.Cookie.Secure,
			SameSite: handler.ParseSameSite(cfg.Cookie.SameSite),
			MaxAge:   cfg.Session.TTL,
		}),
		Health: handler.NewHealthHandler(db, dispatcher),
	}, sessions, loginLimiter, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server forced to shutdown: %w", err))
		}
		// Commands already accepted still run before the process exits
		if err := dispatcher.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("dispatcher: %w", err))
		}
		if err := tel.Shutdown(context.WithoutCancel(shutdownCtx)); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}

// newSessionStore opens the configured session store and returns its closer
func newSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, func(), error) {
	if cfg.Session.Store != "redis" {
		return auth.NewInMemorySessionStore(), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect session store: %w", err)
	}
	return auth.NewRedisSessionStore(client), func() { _ = client.Close() }, nil
}
