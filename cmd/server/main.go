//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/himanishpuri/ringabell/internal/config"
	"github.com/himanishpuri/ringabell/pkg/ringabell"
	"github.com/joho/godotenv"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "", "YAML config file")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(config.NewViper(), configFile)
	if err != nil {
		return err
	}
	log := cfg.NewLogger()

	opts, err := cfg.ServiceOptions(log)
	if err != nil {
		return err
	}
	service, err := ringabell.NewService(opts...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer service.Close()

	server := NewServer(service, &ServerConfig{
		Port:           cfg.Server.Port,
		SampleRate:     cfg.SampleRate,
		IndexBackend:   cfg.IndexBackend,
		AllowedOrigins: cfg.Server.Origins,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
	}, log)

	httpServer := server.newHTTPServer()
	server.logEndpoints(httpServer.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
