package transcript_test

import (
	"reflect"
	"testing"

	"ytharvest/internal/transcript"
)

const sampleVTT = "\ufeffWEBVTT\nKind: captions\nLanguage: en\n\nNOTE produced by a robot\nthat writes notes\n\n" +
	"00:00:00.000 --> 00:00:02.000 align:start position:0%\n" +
	"never gonna<00:00:01.000><c> give</c><00:00:01.500><c> you up</c>\n\n" +
	"00:00:02.000 --> 00:00:04.000\n" +
	"never gonna give you up\n" +
	"<v Rick>never gonna let you down.</v>\n\n" +
	"00:00:04.000 --> 00:00:05.000\n" +
	"Fish &amp; chips!\n"

func TestCleanLinesVTT(t *testing.T) {
	got := transcript.CleanLines([]byte(sampleVTT), "vtt")
	want := []string{
		"never gonna give you up",
		"never gonna let you down.",
		"Fish & chips!",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CleanLines = %#v, want %#v", got, want)
	}
}

func TestCleanLinesSRT(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:01,000\n<i>Hello</i> there\n\n2\n00:00:01,000 --> 00:00:02,000\nGeneral Kenobi.\n"
	got := transcript.CleanLines([]byte(srt), "srt")
	want := []string{"Hello there", "General Kenobi."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CleanLines = %#v, want %#v", got, want)
	}
}

func TestMergeFragments(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      []string
	}{
		{
			name:      "joins until punctuation",
			fragments: []string{"this is", "one sentence.", "and another", "one?"},
			want:      []string{"this is one sentence.", "and another one?"},
		},
		{
			name:      "trailing closer still ends",
			fragments: []string{"he said \"stop.\"", "then left"},
			want:      []string{"he said \"stop.\"", "then left"},
		},
		{
			name:      "duplicate sentences collapse",
			fragments: []string{"hello.", "hello."},
			want:      []string{"hello."},
		},
		{
			name:      "entities decoded",
			fragments: []string{"rock &amp; roll!"},
			want:      []string{"rock & roll!"},
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transcript.MergeFragments(tt.fragments)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("MergeFragments = %#v, want %#v", got, tt.want)
			}
		})
	}
}
