package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/internal/config"
)

var (
	verbose     bool
	adapterFlag string
	pathFlag    string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tempnotes",
	Short: "Short-lived notes with checklists, tags and expiration",
	Long: `tempnotes keeps notes that disappear on their own.
Every note has an expiration (a preset like "1 day", a custom date, or never)
and is hidden from every listing once it has passed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		loaded, err := config.Load(config.Flags{Adapter: adapterFlag, Path: pathFlag})
		if err != nil {
			return err
		}
		cfg = loaded
		slog.Debug("configuration loaded", "adapter", cfg.Adapter, "path", cfg.Path, "key", cfg.Key)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", "", "Storage adapter (fs, sqlite, memory)")
	rootCmd.PersistentFlags().StringVarP(&pathFlag, "path", "p", "", "Storage location (defaults to the nearest .tempnotes directory)")
}
