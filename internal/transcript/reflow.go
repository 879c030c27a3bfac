package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParagraphSeparator separates paragraphs in a Document.
const ParagraphSeparator = "\n\n"

const (
	// earlyCrossing is how far (seconds) a boundary may lie past a sentence
	// start before the crossing is treated as noise.
	earlyCrossing = 2.0
	// minBreakChars is the output length that must be exceeded before a break.
	minBreakChars = 10
)

var annotationRE = regexp.MustCompile(`\(.*?\) `)

// Reflow lays sentences out into paragraphs, breaking where a sentence ends
// past the current boundary.
//
// A crossing whose boundary is still more than two seconds after the sentence
// start does not break and does not consume the boundary. A genuine crossing
// breaks only once the output holds more than ten characters.
func Reflow(sentences []Sentence, boundaries []float64) string {
	var b strings.Builder
	cursor := 0
	for _, s := range sentences {
		if cursor < len(boundaries) && s.End() > boundaries[cursor] {
			if boundaries[cursor] > s.Start+earlyCrossing {
				b.WriteString(s.Text)
				continue
			}
			if utf8.RuneCountInString(b.String()) > minBreakChars {
				cursor++
				b.WriteString(ParagraphSeparator)
			}
		}
		b.WriteString(s.Text)
	}
	return Clean(b.String())
}

// Clean trims '_', '-' and spaces from both ends and removes parenthesized
// annotations such as "(laughs) ". Applying it twice gives the same result.
func Clean(text string) string {
	text = strings.Trim(text, "_- ")
	text = annotationRE.ReplaceAllString(text, "")
	// Removing an annotation can expose new edge characters; trimming again keeps a second pass a no-op.
	return strings.Trim(text, "_- ")
}

// CountParagraphs returns the number of non-empty paragraphs in text.
func CountParagraphs(text string) int {
	n := 0
	for _, p := range strings.Split(text, ParagraphSeparator) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
