// Package tempnotes is the composition root for short-lived notes.
//
// It connects the note store (pkg/core) with a storage backend
// (pkg/adapters/...) chosen by name or injected directly.
//
// Notes carry an expiration and disappear from every read once it has
// passed. The whole collection lives as one JSON array under a single key,
// so backends only need to get and set bytes.
//
// Usage:
//
//	store, err := tempnotes.New("./notes", tempnotes.WithAdapter("sqlite"))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	note, err := store.Create(ctx, tempnotes.Draft{
//		Title:     "Groceries",
//		ExpiresAt: store.ExpirationFromPreset(core.PresetHour),
//	})
package tempnotes
