package render

import (
	"strconv"
	"time"
)

// UnknownDate is rendered for comments without a timestamp.
const UnknownDate = "unknown date"

var magnitudes = []struct {
	size   int64
	suffix string
}{
	{1_000_000_000, "B"},
	{1_000_000, "M"},
	{1_000, "k"},
}

// FormatLikes compacts a count to at most one decimal, truncating toward
// zero: 999 → "999", 1000 → "1k", 1250 → "1.2k", 999999 → "999.9k",
// 1300000 → "1.3M". A trailing ".0" is dropped. Truncation keeps a value
// below a boundary from rendering as the next magnitude.
// This is not nearest rounding: 1260 renders as "1.2k", not "1.3k".
func FormatLikes(n int64) string {
	if n < 0 {
		n = 0
	}
	for _, m := range magnitudes {
		if n < m.size {
			continue
		}
		tenths := n / (m.size / 10)
		whole, frac := tenths/10, tenths%10
		if frac == 0 {
			return strconv.FormatInt(whole, 10) + m.suffix
		}
		return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(frac, 10) + m.suffix
	}
	return strconv.FormatInt(n, 10)
}

// FormatDate renders a Unix timestamp as a UTC YYYY-MM-DD date, or
// UnknownDate when ts is not positive.
func FormatDate(ts int64) string {
	if ts <= 0 {
		return UnknownDate
	}
	return time.Unix(ts, 0).UTC().Format(time.DateOnly)
}

// formatDuration renders seconds as H:MM:SS or M:SS.
func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	s := int64(d%time.Minute) / int64(time.Second)
	if h > 0 {
		return strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
	}
	return strconv.FormatInt(m, 10) + ":" + pad2(s)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
