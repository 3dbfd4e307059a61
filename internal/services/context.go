package services

import "context"

type scopeKey struct{}

// Scope identifies where a piece of work sits inside a run. Fields left
// empty are unknown at that point in the pipeline.
type Scope struct {
	RunID   string
	VideoID string
	Stage   string
}

// ScopeFrom returns the scope carried by ctx, or the zero Scope.
func ScopeFrom(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}
	if s, ok := ctx.Value(scopeKey{}).(Scope); ok {
		return s
	}
	return Scope{}
}

func withScope(ctx context.Context, mutate func(*Scope)) context.Context {
	s := ScopeFrom(ctx)
	mutate(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithRunID tags ctx with the run correlation id.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return withScope(ctx, func(s *Scope) { s.RunID = id })
}

// WithVideoID tags ctx with the video being harvested. A new video resets
// the stage.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return withScope(ctx, func(s *Scope) {
		s.VideoID = id
		s.Stage = ""
	})
}

// WithStage tags ctx with the current pipeline stage.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return withScope(ctx, func(s *Scope) { s.Stage = stage })
}
