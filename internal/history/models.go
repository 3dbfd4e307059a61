package history

import (
	"time"

	"ytharvest/internal/bulk"
)

// Mode distinguishes single-video runs from bulk runs.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeBulk   Mode = "bulk"
)

// Run is one recorded invocation.
type Run struct {
	ID         string    `json:"run_id"`
	Mode       Mode      `json:"mode"`
	Format     string    `json:"format"`
	OutputDir  string    `json:"output_dir,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Outcomes   []Outcome `json:"outcomes,omitempty"`
}

// Outcome is the stored result for one input of a run.
type Outcome struct {
	Position   int           `json:"position"`
	Input      string        `json:"input"`
	VideoID    string        `json:"video_id,omitempty"`
	Status     string        `json:"status"`
	OutputPath string        `json:"output_path,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Message    string        `json:"message,omitempty"`
	Partial    bool          `json:"partial,omitempty"`
	Roots      int           `json:"roots"`
	Replies    int           `json:"replies"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// FromSummary converts a bulk summary into a Run ready to record.
func FromSummary(mode Mode, s bulk.Summary) Run {
	succeeded, failed := s.Tally()
	run := Run{
		ID:         s.RunID,
		Mode:       mode,
		Format:     string(s.Format),
		OutputDir:  s.OutputDir,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Total:      len(s.Outcomes),
		Succeeded:  succeeded,
		Failed:     failed,
		Outcomes:   make([]Outcome, len(s.Outcomes)),
	}
	for i, o := range s.Outcomes {
		run.Outcomes[i] = Outcome{
			Position:   i,
			Input:      o.Input,
			VideoID:    o.VideoID,
			Status:     string(o.Status),
			OutputPath: o.OutputPath,
			Reason:     o.Reason,
			Message:    o.Message,
			Partial:    o.Partial,
			Roots:      o.Roots,
			Replies:    o.Replies,
			Elapsed:    o.Elapsed,
		}
	}
	return run
}
