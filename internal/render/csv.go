package render

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"ytharvest/internal/harvest"
	"ytharvest/internal/services"
)

// CSVHeader is the single header row of the flat projection.
var CSVHeader = []string{"comment_id", "video_id", "comment_text", "like_count", "is_reply", "parent_comment_id"}

// CSV renders one row per comment, each root followed by its replies.
func CSV(h harvest.VideoHarvest) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	rows := [][]string{CSVHeader}
	for _, thread := range h.Comments {
		rows = append(rows, []string{thread.ID, h.VideoID, thread.Text, strconv.FormatInt(thread.LikeCount, 10), "false", ""})
		for _, reply := range thread.Replies {
			rows = append(rows, []string{reply.ID, h.VideoID, reply.Text, strconv.FormatInt(reply.LikeCount, 10), "true", thread.ID})
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, services.Wrap(services.ErrFormatWrite, "formatting", "encode csv", h.VideoID, err)
	}
	return b.Bytes(), nil
}
