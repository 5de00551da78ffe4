package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/server"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config", "path", *configPath, "error", err)
		}
		cfg = loaded
	}

	logger, closeLog, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal("Failed to set up logging", "error", err)
	}
	defer closeLog()

	sshServer, err := server.New(cfg, logger, server.GameHandler(cfg, logger))
	if err != nil {
		logger.Error("Failed to create ssh server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grace := time.Duration(cfg.Server.ShutdownGraceSeconds) * time.Second
	if err := server.Serve(ctx, sshServer, logger, grace); err != nil {
		logger.Error("ssh server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("ssh server stopped")
}
