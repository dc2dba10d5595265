package tempnotes_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/tempnotes"
	"github.com/aretw0/tempnotes/pkg/core"
)

// Example_basic creates a note, lists it, and filters by tag.
func Example_basic() {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store, err := tempnotes.New("",
		tempnotes.WithAdapter(tempnotes.AdapterMemory),
		tempnotes.WithClock(func() time.Time { return now }),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	_, err = store.Create(ctx, tempnotes.Draft{
		Title:     "Groceries",
		ExpiresAt: store.ExpirationFromPreset(core.PresetHour),
		Tags:      []string{"home"},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, n := range core.Filter(store.ListActive(ctx), tempnotes.Query{Text: "gro", Tags: []string{"home"}}) {
		d := store.DescribeExpiration(n.ExpiresAt)
		fmt.Printf("%s expires in %s (soon: %v)\n", n.Title, d.Text, d.ExpiringSoon)
	}
	// Output:
	// Groceries expires in about 1 hour (soon: true)
}
