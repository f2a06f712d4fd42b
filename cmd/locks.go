package cmd

import (
	"context"
	"fmt"

	"doorsync/core/config"
	"doorsync/core/logger"
	"doorsync/feature/seam"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// locksCmd lists the locks visible to the account, so operators can find
// the house name to configure as SEAM_HOUSE_NAME.
var locksCmd = &cobra.Command{
	Use:   "locks",
	Short: "List locks visible to the account",
	Long: `List every lock the configured API key can see, with its device id,
display name and house name. Use this to find the value for
SEAM_HOUSE_NAME.`,
	RunE: runLocks,
}

func init() {
	RootCmd.AddCommand(locksCmd)
}

func runLocks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Only the API key is needed here; house_name may still be unknown.
	if cfg.Seam.APIKey == "" {
		return fmt.Errorf("seam: api_key is required")
	}

	client := seam.NewClient(cfg.Seam, l)
	locks, err := client.ListLocks(ctx)
	if err != nil {
		return err
	}

	if len(locks) == 0 {
		l.Info("No locks visible to this account")
		return nil
	}
	for _, lock := range locks {
		l.Info("Lock",
			zap.String("device_id", lock.DeviceID),
			zap.String("name", lock.Name),
			zap.String("house_name", lock.HouseName),
		)
	}
	return nil
}
