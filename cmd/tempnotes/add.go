package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/pkg/core"
)

var (
	addTitle   string
	addContent string
	addTodos   []string
	addTags    []string
	addExpires string
	addDate    string
	addTime    string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a note",
	Long: `Create a note. The expiration is a preset (see 'tempnotes presets')
or a custom --date and --time. Blank todo items and tags are dropped.`,
	Example: `  tempnotes add "Groceries" --todo milk --todo eggs --expires "1 hour"
  tempnotes add --title "Dentist" --date 2026-11-03 --time 09:30 --tag health`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := addTitle
		if len(args) == 1 {
			title = args[0]
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		expiration, err := resolveExpiration(store, cmd, addExpires, addDate, addTime)
		if err != nil {
			return err
		}

		draft := core.Draft{
			Title:     title,
			Content:   addContent,
			ExpiresAt: expiration,
			Tags:      addTags,
		}
		for _, text := range addTodos {
			draft.Todos = append(draft.Todos, core.NewTodo(text))
		}

		note, err := store.Create(cmd.Context(), draft.Clean())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", note.ID, store.DescribeExpiration(note.ExpiresAt).Text)
		return nil
	},
}

// resolveExpiration picks the custom date when one was given, then the
// explicit preset, then the configured default preset.
func resolveExpiration(store *core.Store, cmd *cobra.Command, preset, date, clock string) (core.Expiration, error) {
	if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
		return store.ExpirationFromDateTime(date, clock)
	}
	if preset == "" {
		preset = cfg.DefaultPreset
	}
	return store.ExpirationFromPreset(preset), nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note body")
	addCmd.Flags().StringArrayVar(&addTodos, "todo", nil, "Checklist item (repeatable)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	addCmd.Flags().StringVarP(&addExpires, "expires", "e", "", "Expiration preset")
	addCmd.Flags().StringVar(&addDate, "date", "", "Custom expiration date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addTime, "time", "", "Custom expiration time (HH:MM)")
}
