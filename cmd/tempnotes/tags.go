package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/pkg/core"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags used by active notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, tag := range core.AllTags(store.ListActive(cmd.Context())) {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the expiration presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range core.Presets() {
			marker := ""
			if p == cfg.DefaultPreset {
				marker = " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", p, marker)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(presetsCmd)
}
