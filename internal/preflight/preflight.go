package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ytharvest/internal/config"
	"ytharvest/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		if !status.Available {
			results = append(results, Result{Name: status.Name, Detail: status.Detail})
			continue
		}
		results = append(results, CheckProvider(ctx, status.Command))
	}
	results = append(results, CheckCreatableDirectory("State directory", cfg.Paths.StateDir))
	results = append(results, CheckCreatableDirectory("Output directory", cfg.Output.Dir))
	return results
}

// Require returns an error naming every failed result.
func Require(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrExternalTool, "pending", "preflight", strings.Join(failed, "; "), errors.New("preflight failed"))
}
