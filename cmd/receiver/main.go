package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fractrade/fraclib/internal/infrastructure/feed"
	"github.com/fractrade/fraclib/internal/infrastructure/logger"
	"github.com/fractrade/fraclib/internal/infrastructure/storage"
	"github.com/fractrade/fraclib/internal/usecase"
	"github.com/fractrade/fraclib/internal/web"
)

type Config struct {
	Feed struct {
		URL string `yaml:"url"`
	} `yaml:"feed"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// 1. Load Config
	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "signals.db"
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Service (journal-only; an executor plugs in here)
	svc := usecase.NewSignalService(store, nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Feed: every raw frame goes through the codec gate
	if cfg.Feed.URL != "" {
		sub := feed.NewSubscriber(cfg.Feed.URL, log)
		sub.OnSignal(func(payload []byte) {
			if _, err := svc.HandleRaw(ctx, payload); err != nil {
				log.Warn("dropped feed payload", zap.Error(err))
			}
		})
		go sub.Run(ctx)
	}

	// 6. Web server
	server := web.NewServer(cfg.Server.Port, svc, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Error("web server stopped", zap.Error(err))
		}
	}()

	// 7. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown failed", zap.Error(err))
	}
}
