package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes"
	lifecycleadapter "github.com/aretw0/tempnotes/pkg/adapters/lifecycle"
	"github.com/aretw0/tempnotes/pkg/core"
	"github.com/aretw0/tempnotes/pkg/refresh"
)

var watchSearch string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep printing the active notes as they change or expire",
	Long: `Print the active notes, then print them again every refresh interval
and whenever the storage is changed by another process. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd, store)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command, store *tempnotes.Store) error {
	refresher := tempnotes.NewRefresher(store,
		refresh.WithInterval(cfg.RefreshInterval),
		refresh.WithLogger(slog.Default()),
	)
	if err := refresher.Start(ctx); err != nil {
		return err
	}

	source := lifecycleadapter.NewSource(refresher.Snapshots())
	if err := source.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	query := core.Query{Text: watchSearch}
	for event := range source.Events() {
		snap, ok := event.(refresh.Snapshot)
		if !ok {
			continue
		}
		slog.Debug("snapshot received", "reason", snap.Reason, "count", len(snap.Notes))

		fmt.Fprintf(out, "--- %s (%s)\n", snap.At.Format("15:04:05"), snap)
		for _, n := range core.Filter(snap.Notes, query) {
			printNote(out, store, n)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "Only show notes containing this text")
}
