package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/revolt-software-bot/client-service-dashboard/internal/clock"
	"github.com/revolt-software-bot/client-service-dashboard/internal/config"
	"github.com/revolt-software-bot/client-service-dashboard/internal/migration"
	"github.com/revolt-software-bot/client-service-dashboard/internal/observability"
	"github.com/revolt-software-bot/client-service-dashboard/internal/observability/logger"
	"github.com/revolt-software-bot/client-service-dashboard/internal/report"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription"
	"github.com/revolt-software-bot/client-service-dashboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	fx.New(options(config.Load(), opts, os.Stdout)...).Run()
}

func parseFlags(args []string, stderr io.Writer) (report.Options, error) {
	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts report.Options
	fs.StringVar(&opts.SearchText, "search", "", "filter by name or description")
	fs.StringVar(&opts.SortKey, "sort", "", "sort key: name, endDate or price")
	fs.StringVar(&opts.Status, "status", "", "print one status list: active, upcoming or expired")
	if err := fs.Parse(args); err != nil {
		return report.Options{}, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(stderr, err)
		return report.Options{}, err
	}
	return opts, nil
}

func options(cfg config.Config, opts report.Options, out io.Writer) []fx.Option {
	mods := []fx.Option{
		fx.Supply(cfg),
		config.Module,
		observability.Module,
		clock.Module,
	}
	if cfg.UsesDatabase() {
		mods = append(mods, db.Module, migration.Module)
	}
	mods = append(mods,
		subscription.Module,
		report.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, runner *report.Runner) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					runCtx := logger.WithRunID(ctx, uuid.NewString())
					if err := runner.Run(runCtx, opts, out); err != nil {
						return err
					}
					return sd.Shutdown()
				},
			})
		}),
	)
	return mods
}
