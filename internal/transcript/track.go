package transcript

import "strings"

// Track is one downloadable caption rendition.
type Track struct {
	Language  string
	Ext       string
	URL       string
	Name      string
	Automatic bool
}

// DefaultLanguages is the preferred language order when none is configured.
var DefaultLanguages = []string{"en", "en-US", "en-GB", "en-CA", "en-AU"}

// Pick selects the best parseable track for langs: a manual track in a
// preferred language, then an automatic one, then any English track. Within
// a language VTT wins over SRT.
func Pick(tracks []Track, langs []string) (Track, bool) {
	usable := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.URL == "" || formatRank(t.Ext) < 0 {
			continue
		}
		usable = append(usable, t)
	}
	if len(usable) == 0 {
		return Track{}, false
	}
	if len(langs) == 0 {
		langs = DefaultLanguages
	}

	for _, automatic := range []bool{false, true} {
		for _, lang := range langs {
			if t, ok := best(usable, func(t Track) bool {
				return t.Automatic == automatic && strings.EqualFold(t.Language, lang)
			}); ok {
				return t, true
			}
		}
	}
	return best(usable, func(t Track) bool {
		return strings.HasPrefix(strings.ToLower(t.Language), "en")
	})
}

func best(tracks []Track, match func(Track) bool) (Track, bool) {
	var chosen Track
	found := false
	for _, t := range tracks {
		if !match(t) {
			continue
		}
		if !found || formatRank(t.Ext) > formatRank(chosen.Ext) {
			chosen = t
			found = true
		}
	}
	return chosen, found
}

func formatRank(ext string) int {
	switch strings.ToLower(ext) {
	case "vtt":
		return 1
	case "srt":
		return 0
	default:
		return -1
	}
}
