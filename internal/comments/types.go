package comments

import "context"

// ReplyCap is the maximum number of replies retained under a single root.
const ReplyCap = 50

// Comment is a single comment as rendered and serialized. ParentID is empty
// for root comments.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
	Timestamp int64  `json:"timestamp"`
	ParentID  string `json:"parent_id,omitempty"`
}

// IsReply reports whether the comment references a parent.
func (c Comment) IsReply() bool {
	return c.ParentID != ""
}

// Thread is a root comment with its visible replies. Replies is never nil.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// Cursor is an opaque resume position understood only by the Source that
// issued it. The zero value requests the first page.
type Cursor string

// Page is one batch of raw comment records.
type Page struct {
	Comments []Comment
	Next     Cursor
	Done     bool
}

// Source yields comment pages for a video. Errors wrapping
// services.ErrProviderTransient end ingestion with a partial result; any other
// error fails the video.
type Source interface {
	Fetch(ctx context.Context, videoID string, cursor Cursor) (Page, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, videoID string, cursor Cursor) (Page, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, videoID string, cursor Cursor) (Page, error) {
	return f(ctx, videoID, cursor)
}

// Releaser is implemented by sources that hold per-video state between
// pages. Build calls Release once it stops reading, including when capped.
type Releaser interface {
	Release(videoID string)
}
