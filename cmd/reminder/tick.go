package main

import (
	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/services/reminder"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// tickCmd runs exactly one tick. The exit status is non-zero only for a
// tick-level failure; undelivered reminders are reported in the logs.
func tickCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run a single reminder tick and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			uc := reminder.NewUC(a.users(), a.out, notification.SystemClock{}, a.log, a.cfg.Sched.MaxInFlight)
			runner := reminder.New(a.log, uc, &a.cfg.Sched, prometheus.NewRegistry())
			_, err = runner.RunOnce(ctx)
			return err
		},
	}
}
