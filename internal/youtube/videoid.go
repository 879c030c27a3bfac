package youtube

import (
	"regexp"
	"strings"
)

var (
	videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	bareIDRE  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ParseVideoID extracts the 11-char video ID from a YouTube URL or returns a bare ID as is.
// Anything else is treated leniently: the text after the last '=' is used.
func ParseVideoID(s string) string {
	s = strings.TrimSpace(s)
	if m := videoIDRE.FindStringSubmatch(s); len(m) >= 2 {
		return m[1]
	}
	if bareIDRE.MatchString(s) {
		return s
	}
	if i := strings.LastIndex(s, "="); i >= 0 {
		return s[i+1:]
	}
	return s
}

// WatchURL returns the canonical watch page URL.
func WatchURL(videoID string) string { return ytWatchURL + videoID }

// EmbedURL returns the embeddable player URL.
func EmbedURL(videoID string) string { return ytEmbedURL + videoID }
