package ytdlp

import (
	"sort"
	"strings"

	"ytharvest/internal/comments"
	"ytharvest/internal/harvest"
	"ytharvest/internal/transcript"
	"ytharvest/internal/videoid"
)

// Probe is the metadata view of a video.
type Probe = harvest.Probe

// info is the subset of yt-dlp's JSON dump the harvester reads.
type info struct {
	ID                string                     `json:"id"`
	Title             string                     `json:"title"`
	Channel           string                     `json:"channel"`
	Uploader          string                     `json:"uploader"`
	WebpageURL        string                     `json:"webpage_url"`
	ViewCount         *int64                     `json:"view_count"`
	Duration          *float64                   `json:"duration"`
	UploadDate        string                     `json:"upload_date"`
	Description       string                     `json:"description"`
	Tags              []string                   `json:"tags"`
	CommentCount      *int64                     `json:"comment_count"`
	Subtitles         map[string][]captionFormat `json:"subtitles"`
	AutomaticCaptions map[string][]captionFormat `json:"automatic_captions"`
	Comments          []rawComment               `json:"comments"`
}

type captionFormat struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type rawComment struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	LikeCount *int64   `json:"like_count"`
	Timestamp *float64 `json:"timestamp"`
	Parent    string   `json:"parent"`
}

func (doc info) probe(videoID string) Probe {
	channel := doc.Channel
	if channel == "" {
		channel = doc.Uploader
	}
	meta := &harvest.Metadata{
		Title:       doc.Title,
		Channel:     channel,
		URL:         doc.WebpageURL,
		UploadDate:  formatUploadDate(doc.UploadDate),
		Description: doc.Description,
		Tags:        doc.Tags,
	}
	if meta.URL == "" {
		meta.URL = videoid.WatchURL(videoID)
	}
	if doc.ViewCount != nil {
		meta.ViewCount = *doc.ViewCount
	}
	if doc.Duration != nil {
		meta.Duration = int64(*doc.Duration)
	}

	tracks := captionTracks(doc.Subtitles, false)
	tracks = append(tracks, captionTracks(doc.AutomaticCaptions, true)...)
	return Probe{Metadata: meta, Available: doc.CommentCount, Captions: tracks}
}

func (doc info) comments() []comments.Comment {
	out := make([]comments.Comment, 0, len(doc.Comments))
	for _, raw := range doc.Comments {
		c := comments.Comment{
			ID:     raw.ID,
			Author: raw.Author,
			Text:   raw.Text,
		}
		if raw.LikeCount != nil {
			c.LikeCount = *raw.LikeCount
		}
		if raw.Timestamp != nil {
			c.Timestamp = int64(*raw.Timestamp)
		}
		if raw.Parent != "" && raw.Parent != "root" {
			c.ParentID = raw.Parent
		}
		out = append(out, c)
	}
	return out
}

// captionTracks flattens a language map in a stable order.
func captionTracks(byLang map[string][]captionFormat, automatic bool) []transcript.Track {
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var tracks []transcript.Track
	for _, lang := range langs {
		for _, f := range byLang[lang] {
			tracks = append(tracks, transcript.Track{
				Language:  lang,
				Ext:       f.Ext,
				URL:       f.URL,
				Name:      f.Name,
				Automatic: automatic,
			})
		}
	}
	return tracks
}

// formatUploadDate turns yt-dlp's YYYYMMDD into YYYY-MM-DD.
func formatUploadDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) != 8 {
		return raw
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:]
}
