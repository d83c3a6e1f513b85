// Package main runs the in-memory inventory API stub.
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

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stockroom/internal/config"
	"stockroom/internal/core/clock"
	"stockroom/internal/infrastructure/http/stub"
	"stockroom/internal/infrastructure/memstore"
	"stockroom/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("stockstub", pflag.ExitOnError)
	addr := flags.String("addr", ":5000", "listen address")
	seed := flags.Bool("seed", false, "load demo inventory data")
	flags.String("log-level", "info", "log level (env "+config.KeyLogLevel+")")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	ctx := logger.WithLogger(context.Background(), log)

	clk := clock.Real()
	store := memstore.NewStore()
	if *seed {
		memstore.SeedDemo(store, clk.Now())
		log.Infow("demo data loaded",
			"products", store.Products.Len(),
			"suppliers", store.Suppliers.Len(),
		)
	}

	router := stub.NewRouter(stub.RouterConfig{
		Store:  store,
		Logger: log,
		Clock:  clk,
	})

	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("inventory stub starting", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(ctx, "server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
