package transcript

import (
	"strconv"
	"strings"
)

// AssembleSentences merges chronological fragments into sentences.
//
// A sentence closes on a fragment whose raw text ends in '.', '!' or '?'.
// Its duration is measured from the running start time to the end of the
// closing fragment and rounded to hundredths. The next sentence starts at
// that duration value, not at start+duration. Text after the last terminal
// fragment is dropped.
func AssembleSentences(fragments []Fragment) []Sentence {
	var (
		sentences []Sentence
		acc       strings.Builder
		startTime float64
	)
	for _, f := range fragments {
		acc.WriteString(strings.ReplaceAll(f.Text, "\n", " "))
		acc.WriteByte(' ')
		if !endsSentence(f.Text) {
			continue
		}
		duration := round2(f.Start + f.Duration - startTime)
		sentences = append(sentences, Sentence{
			Text:     acc.String(),
			Start:    startTime,
			Duration: duration,
		})
		acc.Reset()
		startTime = duration
	}
	return sentences
}

func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// round2 rounds the exact binary value of v to two decimals, ties to even.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
