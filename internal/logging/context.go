package logging

import (
	"context"
	"log/slog"

	"ytharvest/internal/services"
)

// Keys shared by every handler. The console handler folds component, video
// and stage into the line prefix.
const (
	FieldComponent = "component"
	FieldVideoID   = "video_id"
	FieldStage     = "stage"
	FieldRunID     = "run_id"
	// FieldEventType names the event a line records (e.g. "video_failed").
	FieldEventType = "event_type"
	// FieldErrorHint carries a short next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields turns the run scope carried by ctx into log attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	scope := services.ScopeFrom(ctx)
	var fields []slog.Attr
	for _, f := range []struct{ key, value string }{
		{FieldVideoID, scope.VideoID},
		{FieldStage, scope.Stage},
		{FieldRunID, scope.RunID},
	} {
		if f.value != "" {
			fields = append(fields, slog.String(f.key, f.value))
		}
	}
	return fields
}

// WithContext returns logger with the scope fields of ctx attached.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
