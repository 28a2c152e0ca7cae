// metastore metadata session server
// Holds typed, multi-valued metadata containers for document processing passes
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nainya/metastore/internal/config"
	"github.com/nainya/metastore/internal/logger"
	"github.com/nainya/metastore/internal/metrics"
	"github.com/nainya/metastore/internal/server"

	// Register the well-known property catalog.
	_ "github.com/nainya/metastore/pkg/props"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file")
	listenAddr  = flag.String("listen", "", "API listen address (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Observability port (overrides config)")
	logLevel    = flag.String("log-level", "", "Log level (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.GetGlobalLogger().Fatal("Failed to load config").Err(err).Send()
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *metricsPort != 0 {
		cfg.MetricsPort = *metricsPort
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger.InitGlobalLogger(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	log := logger.GetGlobalLogger()
	log.LogServerStart(cfg.ListenAddr, cfg.MetricsPort)

	m := metrics.Default()

	obs := server.NewObservabilityServer(cfg.MetricsPort, log)
	go func() {
		if err := obs.Start(); err != nil {
			log.Error("Observability server stopped").Err(err).Send()
		}
	}()

	api := server.NewServer(cfg.ListenAddr, log, m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.Shutdown(ctx); err != nil {
			log.Error("API shutdown failed").Err(err).Send()
		}
		if err := obs.Shutdown(ctx); err != nil {
			log.Error("Observability shutdown failed").Err(err).Send()
		}
	}()

	if err := api.Start(); err != nil {
		log.Fatal("Failed to serve").Err(err).Send()
	}
}
