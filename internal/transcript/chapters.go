package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

// BoundaryExtractor derives paragraph break times (seconds) for a video.
type BoundaryExtractor interface {
	Boundaries(description string, fragments []Fragment) []float64
}

// BoundaryFunc adapts a plain function to BoundaryExtractor.
type BoundaryFunc func(description string, fragments []Fragment) []float64

// Boundaries calls f.
func (f BoundaryFunc) Boundaries(description string, fragments []Fragment) []float64 {
	return f(description, fragments)
}

var timestampRE = regexp.MustCompile(`\d{1,2}:\d{2}`)

// DescriptionTimestamps reads chapter markers ("m:ss" / "mm:ss") from free text.
//
// Only ASCII digits are recognised; markers written in other numeral systems
// are ignored. Markers are kept in text order and trusted to be ascending. The end of the
// last fragment is appended as a closing boundary, and a leading 0:00 marker
// is dropped so the first paragraph is never empty.
type DescriptionTimestamps struct{}

// Boundaries implements BoundaryExtractor.
func (DescriptionTimestamps) Boundaries(description string, fragments []Fragment) []float64 {
	var out []float64
	for _, ts := range timestampRE.FindAllString(description, -1) {
		if sec, ok := parseTimestamp(ts); ok {
			out = append(out, sec)
		}
	}
	if n := len(fragments); n > 0 {
		last := fragments[n-1]
		out = append(out, last.Start+last.Duration)
	}
	if len(out) > 0 && out[0] == 0 {
		return out[1:]
	}
	return out
}

func parseTimestamp(ts string) (float64, bool) {
	mins, secs, ok := strings.Cut(ts, ":")
	if !ok {
		return 0, false
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, false
	}
	s, err := strconv.Atoi(secs)
	if err != nil {
		return 0, false
	}
	return float64(m)*60 + float64(s), true
}
