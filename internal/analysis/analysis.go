package analysis

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"ytharvest/internal/textutil"
)

// Sentiment holds polarity in [-1, 1] and subjectivity in [0, 1].
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Summary is the analysis attached to a harvest. Either part may be absent
// when disabled.
type Summary struct {
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Keywords  []string   `json:"keywords,omitempty"`
}

// Options selects which parts of the summary are computed.
type Options struct {
	Sentiment    bool
	Keywords     bool
	KeywordCount int
}

// Analyze computes the enabled parts of a Summary over text. It returns nil
// when nothing is enabled.
func Analyze(text string, opts Options) *Summary {
	if !opts.Sentiment && !opts.Keywords {
		return nil
	}
	summary := &Summary{}
	if opts.Sentiment {
		s := Score(text)
		summary.Sentiment = &s
	}
	if opts.Keywords {
		summary.Keywords = Keywords(text, opts.KeywordCount)
	}
	return summary
}

// Score returns the lexicon sentiment of text. Text with no opinion words
// scores zero on both axes.
func Score(text string) Sentiment {
	words := words(text)
	var polarity, subjectivity float64
	hits := 0
	for i, word := range words {
		entry, ok := lexicon[word]
		if !ok {
			continue
		}
		p := entry.polarity
		if i > 0 {
			if factor, ok := intensifiers[words[i-1]]; ok {
				p *= factor
			}
		}
		if negated(words, i) {
			p *= -0.5
		}
		polarity += p
		subjectivity += entry.subjectivity
		hits++
	}
	if hits == 0 {
		return Sentiment{}
	}
	return Sentiment{
		Polarity:     clamp(polarity/float64(hits), -1, 1),
		Subjectivity: clamp(subjectivity/float64(hits), 0, 1),
	}
}

// Keywords returns up to n of the most frequent content tokens in text.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, token := range textutil.Tokenize(text) {
		if _, stop := stopwords[token]; stop {
			continue
		}
		counts[token]++
	}
	if len(counts) == 0 {
		return nil
	}
	ranked := make([]string, 0, len(counts))
	for token := range counts {
		ranked = append(ranked, token)
	}
	slices.SortFunc(ranked, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
}

func negated(words []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-3; j-- {
		if _, ok := negators[words[j]]; ok {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	v = math.Round(v*1000) / 1000
	return math.Max(lo, math.Min(hi, v))
}
