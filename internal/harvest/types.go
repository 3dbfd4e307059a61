package harvest

import (
	"ytharvest/internal/analysis"
	"ytharvest/internal/comments"
)

// Metadata is the flat description of a video.
type Metadata struct {
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	URL         string   `json:"url"`
	ViewCount   int64    `json:"view_count"`
	Duration    int64    `json:"duration"`
	UploadDate  string   `json:"upload_date,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}

// Counts summarizes what a harvest emitted. Available is the provider's own
// comment total when it reports one.
type Counts struct {
	Roots     int    `json:"roots"`
	Replies   int    `json:"replies"`
	Total     int    `json:"total"`
	Available *int64 `json:"available,omitempty"`
}

// VideoHarvest is the canonical record for one video. It is built once by
// Assemble and treated as read-only afterwards.
type VideoHarvest struct {
	VideoID    string            `json:"video_id"`
	Metadata   Metadata          `json:"metadata"`
	Transcript []string          `json:"transcript"`
	Comments   []comments.Thread `json:"comments"`
	Analysis   *analysis.Summary `json:"analysis,omitempty"`
	Counts     Counts            `json:"counts"`
	Partial    bool              `json:"partial"`
}
