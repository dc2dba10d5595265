package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/pkg/core"
)

var todoUndo bool

var todoCmd = &cobra.Command{
	Use:   "todo [note-id] [todo-id]",
	Short: "Check off a checklist item",
	Long:  `Mark a checklist item as completed, or as open again with --undo. Both ids accept unique prefixes.`,
	Args:  cobra.ExactArgs(2),
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
		todoID, err := findTodo(note, args[1])
		if err != nil {
			return err
		}

		if _, err := store.ToggleTodo(cmd.Context(), note.ID, todoID, !todoUndo); err != nil {
			return err
		}

		state := "done"
		if todoUndo {
			state = "open"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", shortID(todoID), state)
		return nil
	},
}

func findTodo(note core.Note, ref string) (string, error) {
	var matches []string
	for _, t := range note.Todos {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("todo prefix %q is ambiguous", ref)
	}
	return "", fmt.Errorf("%w: %s", core.ErrTodoNotFound, ref)
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.Flags().BoolVar(&todoUndo, "undo", false, "Mark the item as not completed")
}
