package cmd

import (
	"context"
	"fmt"
	"time"

	"doorsync/core/config"
	"doorsync/core/logger"
	"doorsync/core/reconcile"
	"doorsync/feature/notify"
	"doorsync/feature/ownerrez"
	"doorsync/feature/seam"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSync bool

// syncCmd performs one reconciliation run.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile today's check-ins and check-outs against the door lock",
	Long: `Reconcile the property's bookings against the door lock for today.

Guests arriving today get an access code (last four digits of their phone
number) labelled with their full name. Guests departing today have their
code removed once the cutoff hour has passed. Every change is announced to
the operator roster by SMS.

The run is stateless and safe to repeat: removals are idempotent on the
lock side, and untouched bookings trigger no provider calls at all.

Examples:
  # Reconcile and apply
  doorsync sync

  # Decide only, mutate nothing, notify no one
  doorsync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only: fetch and decide, but mutate nothing and notify no one")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l)

	validators := []interface{ Validate() error }{cfg.Sync, cfg.OwnerRez, cfg.Seam, cfg.Notify}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	source := ownerrez.NewClient(cfg.OwnerRez, l)
	locks := seam.NewClient(cfg.Seam, l)
	notifier := notify.NewService(cfg.Notify, l)
	engine := reconcile.NewEngine(source, locks, notifier, l, cfg.Sync)

	l.Info("Starting door code sync",
		zap.Int64("property_id", cfg.OwnerRez.PropertyID),
		zap.String("house_name", cfg.Seam.HouseName),
		zap.Bool("dry_run", dryRunSync),
	)

	// Startup resolution is fatal: without a target device there is
	// nothing to reconcile against.
	lock, err := locks.ResolveLock(ctx, cfg.Seam.HouseName)
	if err != nil {
		return fmt.Errorf("failed to resolve target lock: %w", err)
	}

	bookings, err := source.ListBookings(ctx, cfg.OwnerRez.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to fetch bookings: %w", err)
	}

	plan := engine.Plan(ctx, bookings, time.Now())

	if dryRunSync {
		printPlan(l, plan)
		report := &reconcile.RunReport{Failures: plan.Failures, Summary: plan.Summary}
		return report.Err()
	}

	report := engine.Apply(ctx, lock, plan)
	printReport(l, report)
	return report.Err()
}

// printPlan prints the planned actions without applying them.
func printPlan(l *zap.Logger, plan *reconcile.Plan) {
	l.Info("Dry run: planned actions",
		zap.Int("bookings", plan.Summary.Bookings),
		zap.Int("arrivals", plan.Summary.Arrivals),
		zap.Int("departures", plan.Summary.Departures),
		zap.Int("skipped", plan.Summary.Skipped),
		zap.Int("failures", plan.Summary.Failures),
	)
	for _, action := range plan.Actions {
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("guest", action.GuestName),
			zap.String("reason", action.Reason),
		)
	}
}

// printReport prints the run outcome using logger.
func printReport(l *zap.Logger, report *reconcile.RunReport) {
	l.Info("Sync report",
		zap.Int("bookings", report.Summary.Bookings),
		zap.Int("arrivals", report.Summary.Arrivals),
		zap.Int("departures", report.Summary.Departures),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("codes_added", report.Summary.CodesAdded),
		zap.Int("codes_removed", report.Summary.CodesRemoved),
		zap.Int("failures", report.Summary.Failures),
	)
	for _, f := range report.Failures {
		l.Warn("Captured failure",
			zap.String("stage", f.Stage),
			zap.Int64("guest_id", f.GuestID),
			zap.String("guest", f.GuestName),
			zap.Error(f.Err),
		)
	}
}
