package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/pflag"

	"github.com/b0bbywan/go-spotify-dbus/api"
	"github.com/b0bbywan/go-spotify-dbus/backend"
	"github.com/b0bbywan/go-spotify-dbus/backend/player"
	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

func main() {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		logger.Fatal("[%s] %v", config.AppName, err)
	}

	cfg, err := config.New(fs)
	if err != nil {
		logger.Fatal("[%s] Failed to load config: %v", config.AppName, err)
	}

	// Set log levels from config, then follow config file changes
	logger.SetLevel(cfg.LogLevel)
	logger.SetPackageLevels(cfg.LogLevels)
	config.WatchLogLevel(fs)

	// Global context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := player.NewSessionBus()
	if err != nil {
		logger.Fatal("[%s] Cannot reach the session bus: %v", config.AppName, err)
	}

	// Initialize backends
	b, err := backend.New(ctx, bus, cfg.Player, cfg.Zeroconf)
	if err != nil {
		bus.Close()
		logger.Fatal("[%s] Backend initialization failed: %v", config.AppName, err)
	}

	if err := b.Start(); err != nil {
		b.Close()
		bus.Close()
		logger.Fatal("[%s] Backend start failed: %v", config.AppName, err)
	}

	server := api.NewServer(cfg.Api, b)

	// Channel to synchronize shutdown
	shutdownDone := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigChan:
			logger.Info("[%s] Shutdown signal received, stopping server...", config.AppName)
		case <-ctx.Done():
		}

		if _, err := daemon.SdNotify(false, daemon.SdNotifyStopping); err != nil {
			logger.Debug("[%s] sd_notify: %v", config.AppName, err)
		}

		// Cancel the global context - stops the listener and the reconnect loop
		cancel()

		b.Close()
		if err := bus.Close(); err != nil {
			logger.Warn("[%s] closing session bus: %v", config.AppName, err)
		}

		close(shutdownDone)
	}()

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Warn("[%s] sd_notify failed: %v", config.AppName, err)
	} else if ok {
		logger.Debug("[%s] systemd notified", config.AppName)
	}

	logger.Info("[%s] started for %s", config.AppName, cfg.Player.BusName)
	if server != nil {
		if err := server.Run(ctx); err != nil {
			logger.Error("[%s] http server error: %v", config.AppName, err)
			cancel()
		}
	}

	<-shutdownDone
	logger.Info("[%s] stopped", config.AppName)
}
