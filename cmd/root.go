package cmd

import (
	"errors"
	"fmt"
	"os"

	"doorsync/core/logger"
	"doorsync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "doorsync",
	Short: "Door code sync for rental check-ins and check-outs",
	Long: `Doorsync reconciles a property's booking calendar against its smart
door lock: arriving guests get an access code derived from their phone
number, guests departed past the cutoff hour have theirs removed, and
operators are notified of every change by SMS.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps the outcome onto the process exit
// code: 0 on success, 2 when a run finished but captured failures, 1 for
// anything fatal.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}

		if errors.Is(err, reconcile.ErrPartialFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
