package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/tempnotes"
	"github.com/aretw0/tempnotes/pkg/core"
)

// openStore opens the configured store. Without an explicit --path the
// nearest project-local .tempnotes directory wins over the configured one.
func openStore() (*core.Store, error) {
	path := cfg.Path
	if pathFlag == "" && os.Getenv("TEMPNOTES_PATH") == "" {
		if wd, err := os.Getwd(); err == nil {
			if dir, err := tempnotes.FindDataDir(wd); err == nil {
				path = dir
			}
		}
	}

	store, err := tempnotes.New(path,
		tempnotes.WithAdapter(cfg.Adapter),
		tempnotes.WithStorageKey(cfg.Key),
		tempnotes.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes at %s: %w", path, err)
	}
	return store, nil
}

// findNote resolves a full id or a unique id prefix among the active notes.
func findNote(notes []core.Note, ref string) (core.Note, error) {
	var found []core.Note
	for _, n := range notes {
		if n.ID == ref {
			return n, nil
		}
		if strings.HasPrefix(n.ID, ref) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return core.Note{}, fmt.Errorf("id prefix %q is ambiguous (%d notes)", ref, len(found))
	}
}

// shortID is the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printNote(w io.Writer, store *core.Store, n core.Note) {
	d := store.DescribeExpiration(n.ExpiresAt)

	var expiry string
	switch {
	case d.NeverExpires:
		expiry = "Never expires"
	case d.ExpiringSoon:
		expiry = fmt.Sprintf("Expires soon: %s left", d.Text)
	default:
		expiry = fmt.Sprintf("Expires in: %s", d.Text)
	}

	fmt.Fprintf(w, "%s  %s  (%s)\n", shortID(n.ID), n.Title, expiry)
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "    tags: %s\n", strings.Join(n.Tags, ", "))
	}
	if n.Content != "" {
		for _, line := range strings.Split(n.Content, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	for _, t := range n.Todos {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "    [%s] %s  (%s)\n", mark, t.Text, shortID(t.ID))
	}
}
