package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/api/server"
	"github.com/podstock/stocksync/internal/config"
	"github.com/podstock/stocksync/internal/connectivity"
	"github.com/podstock/stocksync/internal/inventory"
	"github.com/podstock/stocksync/internal/kv"
	"github.com/podstock/stocksync/internal/logger"
	"github.com/podstock/stocksync/internal/notify"
	"github.com/podstock/stocksync/internal/offline"
	"github.com/podstock/stocksync/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadServiceConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "stocksyncd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting stocksync service")

	// Connect to database, retrying with backoff while the remote store
	// comes up
	var db *gorm.DB
	connectPolicy := backoff.NewExponentialBackOff()
	connectPolicy.MaxElapsedTime = cfg.Database.ConnectTimeout
	err = backoff.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if openErr != nil {
			logger.WarnCtx(ctx, "Database not reachable, retrying", zap.Error(openErr))
		}
		return openErr
	}, backoff.WithContext(connectPolicy, ctx))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// Run migrations when enabled
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to run migrations", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Database migrations applied")
	}

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	jsonAdapter := adapter.NewJSON()
	fs := adapter.NewFileSystem()

	// Establish the connectivity signal and notification sink. Without a
	// broker the service runs always-online with log-only notifications.
	var connSignal connectivity.Signal
	var sink notify.Sink = notify.NewLoggerSink()
	if cfg.NATS.DisableConnection {
		logger.WarnCtx(ctx, "NATS connection disabled, running always-online")
		connSignal = connectivity.NewManual(true)
	} else {
		link, err := connectivity.Connect(connectivity.Config{
			URL:            cfg.NATS.URL,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
		}, adapter.NewNatsConnector())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer link.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

		connSignal = link
		sink = notify.NewNatsSink(link.Conn(), cfg.NATS.NotifySubject, jsonAdapter, sink)
	}

	// Open the durable queue storage
	queueKV, err := kv.NewFileStore(cfg.Queue.Dir, fs)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open queue storage", zap.Error(err), zap.String("dir", cfg.Queue.Dir))
	}

	// Build the state store and the offline queue
	state := inventory.New(dataStore, sink, cfg.Actor)
	queue := offline.New(dataStore, queueKV, connSignal, sink, adapter.NewClock(), jsonAdapter, cfg.Queue.Key)
	queue.Start(ctx)

	// A reconnect replays the queue; refresh the snapshot as well so the
	// replayed writes become visible locally
	connSignal.Subscribe(func(st connectivity.State) {
		if st == connectivity.Online {
			go state.Load(ctx)
		}
	})

	// Load the initial snapshot
	state.Load(ctx)
	logger.InfoCtx(ctx, "State store loaded",
		zap.Int("identifiers", len(state.Identifiers())),
		zap.Int("pending_changes", len(queue.Pending())),
	)

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Actor:        cfg.Actor,
	}, state, queue, connSignal)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("stocksync service stopped")
}
