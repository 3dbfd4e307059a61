package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ytharvest/internal/services"
)

// Options bounds a Build call.
type Options struct {
	// MaxComments is the ceiling on roots plus replies accepted. Must be >= 1.
	MaxComments int
	// Progress, when set, receives the running accepted count after each page.
	Progress func(accepted int)
}

// Result is the forest accumulated by Build together with ingestion counters.
type Result struct {
	Threads []Thread

	Roots   int
	Replies int

	// Orphans counts replies whose parent was never accepted.
	Orphans int
	// OverCap counts replies dropped because their root already held ReplyCap replies.
	OverCap int
	// Malformed counts records without an identifier or duplicated roots.
	Malformed int
	// Pages is the number of pages pulled from the source.
	Pages int

	// Capped is set when ingestion stopped at MaxComments.
	Capped bool
	// Partial is set when a transient provider error truncated the stream.
	Partial bool
	// Cause holds the transient error behind a partial result.
	Cause error
}

// Total returns roots plus replies accepted.
func (r Result) Total() int {
	return r.Roots + r.Replies
}

type builder struct {
	max     int
	threads []Thread
	index   map[string]int
	res     Result
}

// Build pulls pages from src until the stream ends, the ceiling is reached, or
// the provider fails. Roots are accepted in arrival order; replies attach only
// to roots already accepted, up to ReplyCap each.
func Build(ctx context.Context, src Source, videoID string, opts Options) (Result, error) {
	if src == nil {
		return Result{}, errors.New("comment source required")
	}
	if opts.MaxComments < 1 {
		return Result{}, fmt.Errorf("max comments must be >= 1, got %d", opts.MaxComments)
	}

	if r, ok := src.(Releaser); ok {
		defer r.Release(videoID)
	}

	b := &builder{
		max:   opts.MaxComments,
		index: make(map[string]int),
	}

	var cursor Cursor
	for !b.res.Capped {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		page, err := src.Fetch(ctx, videoID, cursor)
		if err != nil {
			if services.IsTransient(err) {
				b.res.Partial = true
				b.res.Cause = err
				break
			}
			return Result{}, err
		}
		b.res.Pages++
		b.ingest(page.Comments)
		if opts.Progress != nil {
			opts.Progress(b.res.Total())
		}
		if page.Done || page.Next == "" || page.Next == cursor {
			break
		}
		cursor = page.Next
	}

	b.res.Threads = b.threads
	if b.res.Threads == nil {
		b.res.Threads = []Thread{}
	}
	return b.res, nil
}

func (b *builder) ingest(records []Comment) {
	for _, rec := range records {
		if b.res.Total() >= b.max {
			b.res.Capped = true
			return
		}
		rec.ID = strings.TrimSpace(rec.ID)
		rec.ParentID = strings.TrimSpace(rec.ParentID)
		if rec.ID == "" {
			b.res.Malformed++
			continue
		}
		if rec.LikeCount < 0 {
			rec.LikeCount = 0
		}
		if rec.Timestamp < 0 {
			rec.Timestamp = 0
		}
		if rec.IsReply() {
			b.attach(rec)
		} else {
			b.addRoot(rec)
		}
	}
	if b.res.Total() >= b.max {
		b.res.Capped = true
	}
}

func (b *builder) addRoot(rec Comment) {
	if _, seen := b.index[rec.ID]; seen {
		b.res.Malformed++
		return
	}
	b.index[rec.ID] = len(b.threads)
	b.threads = append(b.threads, Thread{Comment: rec, Replies: []Comment{}})
	b.res.Roots++
}

func (b *builder) attach(rec Comment) {
	idx, ok := b.index[rec.ParentID]
	if !ok {
		b.res.Orphans++
		return
	}
	thread := &b.threads[idx]
	if len(thread.Replies) >= ReplyCap {
		b.res.OverCap++
		return
	}
	thread.Replies = append(thread.Replies, rec)
	b.res.Replies++
}
