package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/obs"
	"github.com/NordCoder/Remindus/internal/services/reminder"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the reminder loop until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, *cfgPath)
		},
	}
}

func run(ctx context.Context, cfgPath string) error {
	a, err := bootstrap(ctx, cfgPath)
	if err != nil {
		return err
	}
	defer a.close()
	l := a.log

	l.Info("starting reminder",
		zap.String("push_driver", a.cfg.Push.Driver),
		zap.Duration("tick", a.cfg.Sched.Tick),
		zap.String("metrics_addr", a.cfg.Sched.MetricsAddr),
	)

	ms := obs.BootstrapMetricsServer(a.cfg.Sched.MetricsAddr, prometheus.DefaultGatherer, func(ctx context.Context) error {
		hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		return a.db.Ping(hctx)
	}, l)

	uc := reminder.NewUC(a.users(), a.out, notification.SystemClock{}, l, a.cfg.Sched.MaxInFlight)
	runner := reminder.New(l, uc, &a.cfg.Sched, prometheus.DefaultRegisterer)

	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(ctx) }()

	l.Info("reminder started")

	select {
	case <-ctx.Done():
		l.Info("shutdown signal")
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("runner error", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
	return nil
}
