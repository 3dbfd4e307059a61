package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ytharvest/internal/comments"
	"ytharvest/internal/harvest"
	"ytharvest/internal/textutil"
)

const (
	noComments    = "(No comments found.)"
	noTranscript  = "(Transcript unavailable.)"
	deletedText   = "(Comment deleted)"
	unknownAuthor = "@Unknown"
	replyPrefix   = "  ↳ "
)

var heading = cases.Upper(language.English)

// Text renders the human-readable report: metadata, optional analysis,
// transcript, then comments with replies indented under their root.
func Text(h harvest.VideoHarvest) []byte {
	var b bytes.Buffer
	writeMetadata(&b, h)
	writeAnalysis(&b, h)

	section(&b, "transcript")
	if len(h.Transcript) == 0 {
		b.WriteString(noTranscript + "\n")
	} else {
		b.WriteString(strings.Join(h.Transcript, "\n\n") + "\n")
	}
	b.WriteString("\n")

	section(&b, "comments")
	if len(h.Comments) == 0 {
		b.WriteString(noComments + "\n")
		return b.Bytes()
	}
	for i, thread := range h.Comments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(commentLine(thread.Comment, "") + "\n")
		for _, reply := range thread.Replies {
			b.WriteString(commentLine(reply, replyPrefix) + "\n")
		}
	}
	return b.Bytes()
}

func section(b *bytes.Buffer, name string) {
	fmt.Fprintf(b, "====== %s ======\n", heading.String(name))
}

func writeMetadata(b *bytes.Buffer, h harvest.VideoHarvest) {
	meta := h.Metadata
	section(b, "metadata")
	fmt.Fprintf(b, "Title: %s\n", textutil.Fallback(meta.Title, "(Unknown title)"))
	fmt.Fprintf(b, "Channel: %s\n", textutil.Fallback(meta.Channel, "(Unknown channel)"))
	fmt.Fprintf(b, "URL: %s\n", meta.URL)
	if meta.ViewCount > 0 {
		fmt.Fprintf(b, "Views: %s\n", FormatLikes(meta.ViewCount))
	}
	if meta.Duration > 0 {
		fmt.Fprintf(b, "Duration: %s\n", formatDuration(meta.Duration))
	}
	if meta.UploadDate != "" {
		fmt.Fprintf(b, "Uploaded: %s\n", meta.UploadDate)
	}
	if len(meta.Tags) > 0 {
		fmt.Fprintf(b, "Tags: %s\n", strings.Join(meta.Tags, ", "))
	}
	counts := h.Counts
	fmt.Fprintf(b, "Comments: %d roots, %d replies", counts.Roots, counts.Replies)
	if counts.Available != nil {
		fmt.Fprintf(b, " (%s available)", FormatLikes(*counts.Available))
	}
	b.WriteString("\n")
	if h.Partial {
		b.WriteString("Note: comment stream was interrupted; comments are partial\n")
	}
	b.WriteString("\n")
}

func writeAnalysis(b *bytes.Buffer, h harvest.VideoHarvest) {
	a := h.Analysis
	if a == nil || (a.Sentiment == nil && len(a.Keywords) == 0) {
		return
	}
	section(b, "analysis")
	if a.Sentiment != nil {
		fmt.Fprintf(b, "Sentiment: Polarity=%.2f, Subjectivity=%.2f\n", a.Sentiment.Polarity, a.Sentiment.Subjectivity)
	}
	if len(a.Keywords) > 0 {
		fmt.Fprintf(b, "Keywords: %s\n", strings.Join(a.Keywords, ", "))
	}
	b.WriteString("\n")
}

// commentLine renders "@author (likes: N) [date]: text" on one line.
func commentLine(c comments.Comment, prefix string) string {
	text := textutil.CollapseSpace(c.Text)
	return fmt.Sprintf("%s%s (likes: %s) [%s]: %s",
		prefix,
		displayAuthor(c.Author),
		FormatLikes(c.LikeCount),
		FormatDate(c.Timestamp),
		textutil.Fallback(text, deletedText),
	)
}

func displayAuthor(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return unknownAuthor
	}
	if strings.HasPrefix(author, "@") {
		return author
	}
	return "@" + author
}
