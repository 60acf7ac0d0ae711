package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/config"
	"github.com/podstock/stocksync/internal/connectivity"
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

const usage = `Usage: queuectl [flags] <command>

Commands:
  list    Print the buffered offline queue entries
  replay  Replay the buffered entries against the remote store
  clear   Drop all buffered entries without replaying them
`

func main() {
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadQueueCtlConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "queuectl",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx := context.Background()

	queueKV, err := kv.NewFileStore(cfg.Queue.Dir, adapter.NewFileSystem())
	if err != nil {
		logger.Fatal("Failed to open queue storage", zap.Error(err), zap.String("dir", cfg.Queue.Dir))
	}

	// Replay needs the remote store; list and clear operate on the local
	// blob only
	var dataStore store.Store
	if command == "replay" {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		dataStore = store.NewPGStore(db)
	}

	queue := offline.New(
		dataStore,
		queueKV,
		connectivity.NewManual(true),
		notify.NewLoggerSink(),
		adapter.NewClock(),
		adapter.NewJSON(),
		cfg.Queue.Key,
	)

	switch command {
	case "list":
		entries := queue.Pending()
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			logger.Fatal("Failed to encode entries", zap.Error(err))
		}
		fmt.Println(string(out))
		fmt.Fprintf(os.Stderr, "%d pending entries\n", len(entries))

	case "replay":
		pending := len(queue.Pending())
		if pending == 0 {
			fmt.Println("Queue is empty, nothing to replay")
			return
		}
		if err := queue.Replay(ctx); err != nil {
			logger.Fatal("Replay failed, queue left intact", zap.Error(err))
		}
		fmt.Printf("Replayed %d entries\n", pending)

	case "clear":
		pending := len(queue.Pending())
		if err := queue.Clear(); err != nil {
			logger.Fatal("Failed to clear queue", zap.Error(err))
		}
		fmt.Printf("Dropped %d entries\n", pending)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
