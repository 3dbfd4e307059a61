package bulk

import (
	"time"

	"ytharvest/internal/render"
)

// Status is the terminal state of one input.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome records what happened to one input line.
type Outcome struct {
	Input      string        `json:"input"`
	VideoID    string        `json:"video_id,omitempty"`
	Status     Status        `json:"status"`
	OutputPath string        `json:"output_path,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Message    string        `json:"message,omitempty"`
	Partial    bool          `json:"partial,omitempty"`
	Roots      int           `json:"roots"`
	Replies    int           `json:"replies"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Success reports whether the input produced an output file.
func (o Outcome) Success() bool {
	return o.Status == StatusSuccess
}

// Summary is the result of a bulk run. Outcomes holds exactly one entry per
// input, in input order.
type Summary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Format     render.Format `json:"format"`
	OutputDir  string        `json:"output_dir"`
	Outcomes   []Outcome     `json:"outcomes"`
}

// Tally counts successes and failures.
func (s Summary) Tally() (succeeded, failed int) {
	for _, o := range s.Outcomes {
		if o.Success() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Failed reports whether any input failed.
func (s Summary) Failed() bool {
	_, failed := s.Tally()
	return failed > 0
}
