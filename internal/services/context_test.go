package services_test

import (
	"context"
	"testing"

	"ytharvest/internal/services"
)

func TestScopeAccumulates(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-123")
	ctx = services.WithVideoID(ctx, "dQw4w9WgXcQ")
	ctx = services.WithStage(ctx, "fetching")

	got := services.ScopeFrom(ctx)
	want := services.Scope{RunID: "run-123", VideoID: "dQw4w9WgXcQ", Stage: "fetching"}
	if got != want {
		t.Fatalf("scope = %+v, want %+v", got, want)
	}
}

func TestScopeNewVideoClearsStage(t *testing.T) {
	ctx := services.WithStage(services.WithVideoID(context.Background(), "aaaaaaaaaaa"), "rendering")
	ctx = services.WithVideoID(ctx, "bbbbbbbbbbb")

	got := services.ScopeFrom(ctx)
	if got.VideoID != "bbbbbbbbbbb" || got.Stage != "" {
		t.Fatalf("unexpected scope after switching video: %+v", got)
	}
}

func TestScopeBlankValuesKeepContext(t *testing.T) {
	parent := services.WithRunID(context.Background(), "run-1")
	ctx := services.WithStage(services.WithVideoID(parent, ""), "")
	if ctx != parent {
		t.Fatal("expected blank values to return the parent context")
	}
	if got := services.ScopeFrom(context.Background()); got != (services.Scope{}) {
		t.Fatalf("expected zero scope, got %+v", got)
	}
}
