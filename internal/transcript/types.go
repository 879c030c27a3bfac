// Package transcript rebuilds a readable article from time-coded captions.
//
// The pipeline is: pick a caption track (SelectTrack), merge its fragments into
// sentences (AssembleSentences), derive paragraph breaks from chapter markers
// (BoundaryExtractor), and reflow the sentences into paragraphs (Reflow).
// Builder ties the steps together.
package transcript

import (
	"context"
	"errors"
	"strings"
)

// NoTranscriptNotice replaces the document text when no usable track exists.
const NoTranscriptNotice = "Unfortunately, there are no subs for this video :("

// ErrNoUsableTrack is returned by SelectTrack when no manual track matches the allow-list.
var ErrNoUsableTrack = errors.New("no usable caption track")

// DefaultLanguages lists the caption languages accepted when none are configured.
var DefaultLanguages = []string{"en-GB", "en", "en-US", "ru"}

// Fragment is one raw caption unit as delivered by the provider.
type Fragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Sentence is a run of fragments closed by terminal punctuation.
type Sentence struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the sentence end time.
func (s Sentence) End() float64 { return s.Start + s.Duration }

// Track describes one caption track of a video.
type Track struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name,omitempty"`
	Generated    bool   `json:"generated"` // auto-generated (ASR) track
}

// TrackSet is a set of caption tracks that can be fetched on demand.
// Fetching is assumed to be rate-limited upstream, so callers fetch at most one track.
type TrackSet interface {
	Tracks() []Track
	Fetch(ctx context.Context, languageCode string) ([]Fragment, error)
}

// Document is the generated article.
type Document struct {
	VideoID    string `json:"video_id"`
	Language   string `json:"language,omitempty"`
	Text       string `json:"text"`
	Paragraphs int    `json:"paragraphs"`
	Available  bool   `json:"available"`
}

// HTML returns the text with paragraph breaks rendered as <br><br>.
func (d Document) HTML() string {
	return strings.ReplaceAll(d.Text, ParagraphSeparator, "<br><br>")
}
