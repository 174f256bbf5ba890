// Command reminder scans users once a minute and pushes a review reminder to
// everyone whose chosen time matches the current UTC hour and minute.
//
// Usage:
//
//	reminder run        # long-running loop with /metrics and /healthz
//	reminder tick       # one tick, for an external cron trigger
//	reminder migrate    # apply database migrations
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "reminder",
		Short:        "Scheduled review reminder dispatcher",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config/reminder.yaml", "path to the YAML config file")

	root.AddCommand(runCmd(&cfgPath))
	root.AddCommand(tickCmd(&cfgPath))
	root.AddCommand(migrateCmd(&cfgPath))
	return root
}
