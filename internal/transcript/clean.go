package transcript

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"ytharvest/internal/textutil"
)

var inlineTimestamp = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)

var metadataPrefixes = []string{"Kind:", "Language:", "Style:", "Region:"}

// sentenceEnds terminate a merged sentence.
const sentenceEnds = ".!?…"

// trailingClosers may follow sentence punctuation.
const trailingClosers = "\"')]}»›”’"

// CleanLines reduces a VTT or SRT document to its caption text, one fragment
// per surviving line.
func CleanLines(data []byte, ext string) []string {
	srt := strings.EqualFold(ext, "srt")
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []string
	last := ""
	inBlock := false
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			inBlock = false
			continue
		}
		if inBlock {
			continue
		}
		switch {
		case strings.EqualFold(line, "WEBVTT") || strings.HasPrefix(line, "WEBVTT "):
			continue
		case strings.HasPrefix(line, "NOTE") || line == "STYLE" || line == "REGION":
			inBlock = true
			continue
		case strings.Contains(line, "-->"):
			continue
		case srt && isDigits(line):
			continue
		}
		line = inlineTimestamp.ReplaceAllString(line, "")
		if hasMetadataPrefix(line) {
			continue
		}
		line = textutil.CollapseSpace(stripMarkup(line))
		if line == "" || line == last {
			continue
		}
		last = line
		out = append(out, line)
	}
	return out
}

// MergeFragments joins caption fragments into sentences. Consecutive
// duplicate sentences collapse into one.
func MergeFragments(fragments []string) []string {
	var paragraphs []string
	var buffer string
	flush := func() {
		if buffer == "" {
			return
		}
		if len(paragraphs) == 0 || paragraphs[len(paragraphs)-1] != buffer {
			paragraphs = append(paragraphs, buffer)
		}
		buffer = ""
	}
	for _, raw := range fragments {
		text := textutil.CollapseSpace(html.UnescapeString(raw))
		if text == "" {
			continue
		}
		if buffer == "" {
			buffer = text
		} else {
			buffer += " " + text
		}
		if endsSentence(buffer) {
			flush()
		}
	}
	flush()
	return paragraphs
}

// stripMarkup removes VTT voice/class tags and HTML formatting, decoding
// entities in the remaining text.
func stripMarkup(line string) string {
	if !strings.ContainsAny(line, "<&") {
		return line
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(line))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

func endsSentence(text string) bool {
	trimmed := strings.TrimRight(text, trailingClosers)
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)
	return strings.ContainsRune(sentenceEnds, r[len(r)-1])
}

func hasMetadataPrefix(line string) bool {
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
