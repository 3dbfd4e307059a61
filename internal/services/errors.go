package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProviderTransient = errors.New("provider transient failure")
	ErrProviderFatal     = errors.New("provider failure")
	ErrIncompleteSource  = errors.New("incomplete source data")
	ErrFormatWrite       = errors.New("format write failure")
	ErrOutputCollision   = errors.New("output path collision")
	ErrInvalidInput      = errors.New("invalid input")
	ErrExternalTool      = errors.New("external tool error")
	ErrConfiguration     = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrProviderFatal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTransient reports whether err carries the transient provider marker.
func IsTransient(err error) bool {
	return errors.Is(err, ErrProviderTransient)
}

// Classify returns a short, stable label for err suitable for summaries and
// persisted run history.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrOutputCollision):
		return "output_collision"
	case errors.Is(err, ErrIncompleteSource):
		return "incomplete_source"
	case errors.Is(err, ErrFormatWrite):
		return "write_failed"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrProviderTransient):
		return "provider_transient"
	default:
		return "provider"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
