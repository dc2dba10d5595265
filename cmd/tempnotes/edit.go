package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/pkg/core"
)

var (
	editTitle   string
	editContent string
	editTodos   []string
	editTags    []string
	editExpires string
	editDate    string
	editTime    string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change an existing note",
	Long: `Change an existing note. Only the fields given as flags are replaced;
--todo replaces the whole checklist and --tag replaces every tag.`,
	Args: cobra.ExactArgs(1),
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

		flags := cmd.Flags()
		if flags.Changed("title") {
			note.Title = editTitle
		}
		if flags.Changed("content") {
			note.Content = editContent
		}
		if flags.Changed("todo") {
			todos := make([]core.TodoItem, 0, len(editTodos))
			for _, text := range editTodos {
				todos = append(todos, core.NewTodo(text))
			}
			note.Todos = core.CleanTodos(todos)
		}
		if flags.Changed("tag") {
			note.Tags = core.CleanTags(editTags)
		}
		if flags.Changed("expires") || flags.Changed("date") || flags.Changed("time") {
			note.ExpiresAt, err = resolveExpiration(store, cmd, editExpires, editDate, editTime)
			if err != nil {
				return err
			}
		}

		if _, err := store.Update(cmd.Context(), note); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New body")
	editCmd.Flags().StringArrayVar(&editTodos, "todo", nil, "Checklist item (repeatable, replaces the checklist)")
	editCmd.Flags().StringSliceVarP(&editTags, "tag", "t", nil, "Tag (repeatable, replaces all tags)")
	editCmd.Flags().StringVarP(&editExpires, "expires", "e", "", "Expiration preset")
	editCmd.Flags().StringVar(&editDate, "date", "", "Custom expiration date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editTime, "time", "", "Custom expiration time (HH:MM)")
}
