package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes"
	"github.com/aretw0/tempnotes/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Keep notes for the current directory",
	Long: `Create a .tempnotes directory here. Commands run in this directory or below
use it instead of the configured location unless --path is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get CWD: %w", err)
		}

		dir := filepath.Join(cwd, platform.DataDirName)
		storage, err := tempnotes.Init(dir, tempnotes.WithAdapter(cfg.Adapter))
		if err != nil {
			return fmt.Errorf("failed to initialize %s: %w", dir, err)
		}
		if c, ok := storage.(io.Closer); ok {
			_ = c.Close()
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty notes directory in", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
