package testsupport

import (
	"context"
	"testing"

	"ytharvest/internal/config"
	"ytharvest/internal/history"
)

// OpenHistory opens the run history for cfg, records any seed runs, and
// closes the store when the test ends.
func OpenHistory(t testing.TB, cfg *config.Config, seed ...history.Run) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	for _, run := range seed {
		if err := store.Record(context.Background(), run); err != nil {
			t.Fatalf("seed run %s: %v", run.ID, err)
		}
	}
	return store
}
