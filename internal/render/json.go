package render

import (
	"bytes"
	"encoding/json"

	"ytharvest/internal/comments"
	"ytharvest/internal/harvest"
	"ytharvest/internal/services"
)

// JSON renders the lossless projection as indented JSON.
func JSON(h harvest.VideoHarvest) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized(h)); err != nil {
		return nil, services.Wrap(services.ErrFormatWrite, "formatting", "encode json", h.VideoID, err)
	}
	return b.Bytes(), nil
}

// ParseJSON reads a document produced by JSON back into a VideoHarvest.
func ParseJSON(data []byte) (harvest.VideoHarvest, error) {
	var h harvest.VideoHarvest
	if err := json.Unmarshal(data, &h); err != nil {
		return harvest.VideoHarvest{}, services.Wrap(services.ErrInvalidInput, "formatting", "parse json", "decode harvest", err)
	}
	if h.VideoID == "" {
		return harvest.VideoHarvest{}, services.Wrap(services.ErrIncompleteSource, "formatting", "parse json", "video_id missing", nil)
	}
	return normalized(h), nil
}

// normalized returns a copy whose empty lists encode as [] rather than null.
func normalized(h harvest.VideoHarvest) harvest.VideoHarvest {
	if h.Transcript == nil {
		h.Transcript = []string{}
	}
	if h.Metadata.Tags == nil {
		h.Metadata.Tags = []string{}
	}
	threads := make([]comments.Thread, len(h.Comments))
	for i, thread := range h.Comments {
		if thread.Replies == nil {
			thread.Replies = []comments.Comment{}
		}
		threads[i] = thread
	}
	h.Comments = threads
	return h
}
