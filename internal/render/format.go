package render

import (
	"fmt"
	"strings"

	"ytharvest/internal/harvest"
	"ytharvest/internal/services"
)

// Format selects an output projection.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts txt, text, json, or csv in any case.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "formatting", "parse format", fmt.Sprintf("unknown format %q", value), nil)
	}
}

// Extension is the file extension for f, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Render returns the projection of h in format f.
func Render(h harvest.VideoHarvest, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return Text(h), nil
	case FormatJSON:
		return JSON(h)
	case FormatCSV:
		return CSV(h)
	default:
		return nil, services.Wrap(services.ErrInvalidInput, "formatting", "render", fmt.Sprintf("unknown format %q", f), nil)
	}
}
