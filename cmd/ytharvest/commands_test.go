package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytharvest/internal/bulk"
	"ytharvest/internal/history"
	"ytharvest/internal/render"
	"ytharvest/internal/services"
	"ytharvest/internal/testsupport"
)

func TestHarvestWritesTextDocument(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"harvest", "https://youtu.be/dQw4w9WgXcQ"}, env.configPath)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	target := filepath.Join(env.cfg.Output.Dir, "dQw4w9WgXcQ.txt")
	requireContains(t, out, "dQw4w9WgXcQ -> "+target)
	requireContains(t, out, "(2 roots, 1 replies)")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := string(data)
	requireContains(t, doc, "====== METADATA ======")
	requireContains(t, doc, "Title: Stub Video")
	requireContains(t, doc, "Uploaded: 2024-01-02")
	requireContains(t, doc, "(Transcript unavailable.)")
	requireContains(t, doc, "@alice (likes: 1.2k) [2023-11-14]: First!")
	requireContains(t, doc, "  ↳ @bob (likes: 1)")
	if strings.Index(doc, "@alice") > strings.Index(doc, "@carol") {
		t.Fatalf("expected popularity ordering, got:\n%s", doc)
	}
}

func TestHarvestFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"harvest", "dQw4w9WgXcQ",
		"-f", "json", "-o", "-", "-n", "1", "--sort", "chronological", "--no-keywords",
	}, env.configPath)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	doc, err := render.ParseJSON([]byte(out))
	if err != nil {
		t.Fatalf("parse stdout json: %v", err)
	}
	if len(doc.Comments) != 1 || doc.Comments[0].ID != "c3" {
		t.Fatalf("expected newest root c3 only, got %+v", doc.Comments)
	}
	if doc.Analysis == nil || doc.Analysis.Sentiment == nil || len(doc.Analysis.Keywords) != 0 {
		t.Fatalf("expected sentiment without keywords, got %+v", doc.Analysis)
	}
}

func TestHarvestFailures(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"harvest", "not a video"}, env.configPath)
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	_, _, err = runCLI(t, []string{"harvest", "deadvideo00"}, env.configPath)
	if !errors.Is(err, services.ErrProviderFatal) {
		t.Fatalf("expected provider fatal, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(env.cfg.Output.Dir, "deadvideo00.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output for failed video, stat err %v", statErr)
	}

	_, _, err = runCLI(t, []string{"harvest", "dQw4w9WgXcQ", "--sort", "random"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestBulkReportsFailuresAndRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	inputs := writeInputs(t, env.baseDir,
		"# weekly list",
		"dQw4w9WgXcQ",
		"",
		"https://www.youtube.com/watch?v=deadvideo00",
		"garbage",
		"https://youtu.be/dQw4w9WgXcQ",
	)

	out, _, err := runCLI(t, []string{"bulk", inputs, "-f", "csv", "-w", "2"}, env.configPath)
	if err == nil {
		t.Fatal("expected non-zero exit when videos fail")
	}
	requireContains(t, err.Error(), "3 of 4 videos failed")
	requireContains(t, out, "1 succeeded, 3 failed")
	requireContains(t, out, "invalid_input")
	requireContains(t, out, "output_collision")

	if _, err := os.Stat(filepath.Join(env.cfg.Output.Dir, "dQw4w9WgXcQ.csv")); err != nil {
		t.Fatalf("expected csv output: %v", err)
	}

	store := testsupport.OpenHistory(t, env.cfg)
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Mode != history.ModeBulk || runs[0].Total != 4 || runs[0].Failed != 3 {
		t.Fatalf("unexpected recorded runs: %+v", runs)
	}
}

func TestBulkAllowPartialJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	inputs := writeInputs(t, env.baseDir, "dQw4w9WgXcQ", "deadvideo00")
	dir := filepath.Join(env.baseDir, "bulk-out")

	out, _, err := runCLI(t, []string{"bulk", inputs, "-d", dir, "--allow-partial", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("bulk --allow-partial: %v", err)
	}
	var summary bulk.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if len(summary.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(summary.Outcomes))
	}
	if !summary.Outcomes[0].Success() || summary.Outcomes[1].Success() {
		t.Fatalf("unexpected outcomes: %+v", summary.Outcomes)
	}
	if summary.Outcomes[0].OutputPath != filepath.Join(dir, "dQw4w9WgXcQ.txt") {
		t.Fatalf("unexpected output path %q", summary.Outcomes[0].OutputPath)
	}
}

func TestBulkAppliesContentFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	inputs := writeInputs(t, env.baseDir, "dQw4w9WgXcQ")

	_, _, err := runCLI(t, []string{
		"bulk", inputs, "-f", "json",
		"-n", "1", "--max-comments", "10", "--sort", "chronological", "--no-keywords",
	}, env.configPath)
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.cfg.Output.Dir, "dQw4w9WgXcQ.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := render.ParseJSON(data)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(doc.Comments) != 1 || doc.Comments[0].ID != "c3" {
		t.Fatalf("expected newest root c3 only, got %+v", doc.Comments)
	}
	if doc.Analysis == nil || doc.Analysis.Sentiment == nil || len(doc.Analysis.Keywords) != 0 {
		t.Fatalf("expected sentiment without keywords, got %+v", doc.Analysis)
	}

	_, _, err = runCLI(t, []string{"bulk", inputs, "--sort", "random"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestBulkEmptyInputFile(t *testing.T) {
	env := setupCLITestEnv(t)
	inputs := writeInputs(t, env.baseDir, "# nothing yet", "")
	_, _, err := runCLI(t, []string{"bulk", inputs}, env.configPath)
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty list, got %v", err)
	}
}

func TestHistoryListShowPrune(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	for range 2 {
		if _, _, err := runCLI(t, []string{"harvest", "dQw4w9WgXcQ"}, env.configPath); err != nil {
			t.Fatalf("harvest: %v", err)
		}
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 2 || runs[0].Mode != history.ModeSingle {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", "show", runs[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Run "+runs[0].ID)
	requireContains(t, out, "dQw4w9WgXcQ.txt")

	if _, _, err := runCLI(t, []string{"history", "show", "ffffffff-none"}, env.configPath); err == nil {
		t.Fatal("expected unknown run id to fail")
	}

	out, _, err = runCLI(t, []string{"history", "prune", "--keep", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistoryDisabled())
	if _, _, err := runCLI(t, []string{"harvest", "dQw4w9WgXcQ"}, env.configPath); err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if _, err := os.Stat(env.cfg.HistoryPath()); !os.IsNotExist(err) {
		t.Fatalf("expected no history database, stat err %v", err)
	}
	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil {
		t.Fatal("expected history command to report it is disabled")
	}
}

func TestRenderConvertsSavedJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	saved := filepath.Join(env.baseDir, "saved.json")
	if _, _, err := runCLI(t, []string{"harvest", "dQw4w9WgXcQ", "-f", "json", "-o", saved}, env.configPath); err != nil {
		t.Fatalf("harvest json: %v", err)
	}

	out, _, err := runCLI(t, []string{"render", saved, "--format", "csv"}, "")
	if err != nil {
		t.Fatalf("render csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d:\n%s", len(lines), out)
	}
	if lines[0] != strings.Join(render.CSVHeader, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}

	target := filepath.Join(env.baseDir, "again.txt")
	out, _, err = runCLI(t, []string{"render", saved, "-o", target}, "")
	if err != nil {
		t.Fatalf("render txt: %v", err)
	}
	requireContains(t, out, "Wrote "+target)

	direct := filepath.Join(env.baseDir, "direct.txt")
	if _, _, err := runCLI(t, []string{"harvest", "dQw4w9WgXcQ", "-o", direct}, env.configPath); err != nil {
		t.Fatalf("harvest txt: %v", err)
	}
	fromJSON, _ := os.ReadFile(target)
	fromHarvest, _ := os.ReadFile(direct)
	if string(fromJSON) != string(fromHarvest) {
		t.Fatalf("text rendered from saved json differs from direct harvest\n--- json\n%s\n--- direct\n%s", fromJSON, fromHarvest)
	}

	if _, _, err := runCLI(t, []string{"render", filepath.Join(env.baseDir, "missing.json")}, ""); err == nil {
		t.Fatal("expected missing file to fail")
	}
}
