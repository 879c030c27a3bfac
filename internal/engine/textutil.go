package engine

import (
	"regexp"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgentBot identifies plain API requests (timedtext, Data API).
const UserAgentBot = "GoTranscript/1.0"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML tags and keeps surrounding whitespace intact.
func StripTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
