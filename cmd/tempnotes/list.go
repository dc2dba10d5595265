package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tempnotes/pkg/core"
)

var (
	listJSON   bool
	listSearch string
	listTags   []string
	listGlobs  []string
	listFuzzy  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes that have not expired",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		notes := store.ListActive(cmd.Context())
		if listFuzzy {
			notes = core.Rank(notes, listSearch)
			notes = core.Filter(notes, core.Query{Tags: listTags, TagGlobs: listGlobs})
		} else {
			notes = core.Filter(notes, core.Query{Text: listSearch, Tags: listTags, TagGlobs: listGlobs})
		}

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes.")
			return nil
		}
		for _, n := range notes {
			printNote(out, store, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only notes whose title or content contains this text")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Only notes carrying every given tag")
	listCmd.Flags().StringSliceVar(&listGlobs, "tag-glob", nil, "Only notes with a tag matching each pattern (e.g. work/*)")
	listCmd.Flags().BoolVar(&listFuzzy, "fuzzy", false, "Rank --search results fuzzily instead of substring matching")
}
