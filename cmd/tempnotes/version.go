package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tempnotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tempnotes version %s\n", tempnotes.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
