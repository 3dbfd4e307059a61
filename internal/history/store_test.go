package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"ytharvest/internal/bulk"
	"ytharvest/internal/history"
	"ytharvest/internal/render"
	"ytharvest/internal/testsupport"
)

func sampleSummary(runID string, started time.Time) bulk.Summary {
	return bulk.Summary{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Format:     render.FormatJSON,
		OutputDir:  "/tmp/out",
		Outcomes: []bulk.Outcome{
			{Input: "dQw4w9WgXcQ", VideoID: "dQw4w9WgXcQ", Status: bulk.StatusSuccess, OutputPath: "/tmp/out/dQw4w9WgXcQ.json", Roots: 4, Replies: 9, Elapsed: 1500 * time.Millisecond},
			{Input: "not a video", Status: bulk.StatusFailure, Reason: "invalid_input", Message: "invalid input: not a video"},
			{Input: "9bZkp7q19f0", VideoID: "9bZkp7q19f0", Status: bulk.StatusSuccess, Partial: true, Roots: 1},
		},
	}
}

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.OpenHistory(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	run := history.FromSummary(history.ModeBulk, sampleSummary("5f0c1a2b-0000-4000-8000-000000000001", started))
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.Get(ctx, "5f0c1a2b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Total != 3 || got.Succeeded != 2 || got.Failed != 1 || got.Mode != history.ModeBulk {
		t.Fatalf("unexpected run header: %+v", got)
	}
	if !got.StartedAt.Equal(started) || !got.FinishedAt.Equal(started.Add(3*time.Second)) {
		t.Fatalf("timestamps not preserved: %v %v", got.StartedAt, got.FinishedAt)
	}
	if len(got.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(got.Outcomes))
	}
	for i, want := range []string{"dQw4w9WgXcQ", "not a video", "9bZkp7q19f0"} {
		if got.Outcomes[i].Input != want || got.Outcomes[i].Position != i {
			t.Fatalf("outcome %d out of order: %+v", i, got.Outcomes[i])
		}
	}
	if got.Outcomes[0].Elapsed != 1500*time.Millisecond || got.Outcomes[0].Replies != 9 {
		t.Fatalf("unexpected first outcome: %+v", got.Outcomes[0])
	}
	if got.Outcomes[1].Reason != "invalid_input" || got.Outcomes[1].VideoID != "" {
		t.Fatalf("unexpected failure outcome: %+v", got.Outcomes[1])
	}
	if !got.Outcomes[2].Partial {
		t.Fatalf("expected partial flag to persist")
	}
}

func TestListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.OpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ids := []string{"run-a", "run-b", "run-c"}
	for i, id := range ids {
		started := base.Add(time.Duration(i) * time.Minute)
		if i == 2 {
			started = started.Add(250 * time.Millisecond)
		}
		if err := store.Record(ctx, history.FromSummary(history.ModeSingle, sampleSummary(id, started))); err != nil {
			t.Fatalf("Record %s failed: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("unexpected listing: %+v", runs)
	}
	if runs[0].Outcomes != nil {
		t.Fatalf("List should not load outcomes")
	}
}

func TestGetErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	now := time.Now()
	store := testsupport.OpenHistory(t, cfg,
		history.FromSummary(history.ModeBulk, sampleSummary("abc-1", now)),
		history.FromSummary(history.ModeBulk, sampleSummary("abc-2", now)),
	)
	ctx := context.Background()

	if _, err := store.Get(ctx, "zzz"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, history.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := store.Get(ctx, "abc-1"); err != nil {
		t.Fatalf("exact id should resolve: %v", err)
	}
	if _, err := store.Get(ctx, "abc_"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("underscore must match literally, got %v", err)
	}
}

func TestRecordRejectsDuplicateRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.OpenHistory(t, cfg)
	ctx := context.Background()

	run := history.FromSummary(history.ModeBulk, sampleSummary("dup", time.Now()))
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(ctx, run); err == nil {
		t.Fatalf("expected duplicate run id to fail")
	}
	if err := store.Record(ctx, history.Run{}); err == nil {
		t.Fatalf("expected missing run id to fail")
	}
}

func TestPruneCascadesOutcomes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.OpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := store.Record(ctx, history.FromSummary(history.ModeBulk, sampleSummary(id, base.Add(time.Duration(i)*time.Hour)))); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	removed, err := store.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 runs removed, got %d", removed)
	}
	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "new" {
		t.Fatalf("unexpected remaining runs: %+v", runs)
	}

	db, err := sql.Open("sqlite", store.Path())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	var orphans int
	if err := db.QueryRow("SELECT COUNT(1) FROM outcomes WHERE run_id IN ('old', 'mid')").Scan(&orphans); err != nil {
		t.Fatalf("count outcomes: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected outcomes of pruned runs to be deleted, found %d", orphans)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := history.OpenPath(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
