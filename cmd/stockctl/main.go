// Package main is the entry point for stockctl, a command-line client for
// the inventory web API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stockroom/internal/api"
	"stockroom/internal/config"
	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/reports"
	httpclient "stockroom/internal/infrastructure/http/client"
	"stockroom/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("stockctl", pflag.ExitOnError)
	flags.Usage = func() { usage(flags) }
	args := bindFlags(flags)
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlag(config.KeyAPIBaseURL, flags.Lookup("base-url"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyHTTPTimeout, flags.Lookup("timeout"))

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

	if flags.NArg() != 1 {
		usage(flags)
		os.Exit(2)
	}
	name := flags.Arg(0)
	op, ok := operations[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown operation %q\n\n", name)
		usage(flags)
		os.Exit(2)
	}

	httpCfg := httpclient.DefaultConfig(cfg.APIBaseURL)
	httpCfg.Timeout = cfg.HTTP.Timeout
	t := httpclient.New(httpCfg, log)

	a := &app{
		client:  api.NewClient(t),
		reports: reports.NewService(t, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	logger.Debug(ctx, "running operation", "operation", name, "base_url", cfg.APIBaseURL)

	result, err := op.run(ctx, a, *args)
	if err != nil {
		logger.Error(ctx, "operation failed", "operation", name, "error", err)
		printError(err)
		os.Exit(1)
	}
	logger.Info(ctx, "operation completed", "operation", name)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

func bindFlags(flags *pflag.FlagSet) *opArgs {
	args := &opArgs{}
	flags.String("base-url", "", "API base URL (env "+config.KeyAPIBaseURL+")")
	flags.String("log-level", "info", "log level: debug, info, warn, error (env "+config.KeyLogLevel+")")
	flags.Duration("timeout", 0, "HTTP timeout for calls without their own, 0 for none (env "+config.KeyHTTPTimeout+")")

	flags.StringVar(&args.ID, "id", "", "resource identifier")
	flags.StringVar(&args.Data, "data", "", "JSON request body, or @file to read it from a file")
	flags.StringVar(&args.StartDate, "start", "", "period start date")
	flags.StringVar(&args.EndDate, "end", "", "period end date")
	flags.StringVar(&args.Supplier, "supplier", "", "supplier filter")
	flags.StringVar(&args.Product, "product", "", "product filter")
	flags.StringVar(&args.Customer, "customer", "", "customer filter")
	flags.StringVar(&args.PaymentStatus, "payment-status", "", "payment status filter")
	return args
}

func usage(flags *pflag.FlagSet) {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "usage: stockctl [flags] <operation>\n\noperations:\n")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-30s %s\n", name, operations[name].usage)
	}
	fmt.Fprintf(os.Stderr, "\nflags:\n%s", flags.FlagUsages())
}

func printError(err error) {
	if appErr, ok := apperror.AsAppError(err); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appErr.Code, appErr.Message)
		return
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
}
