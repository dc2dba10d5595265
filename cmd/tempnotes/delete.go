package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		note, err := findNote(store.ListActive(cmd.Context()), args[0])
		if err != nil {
			return err
		}
		if err := store.Remove(cmd.Context(), note.ID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
