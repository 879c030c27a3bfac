package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Builder turns a caption track set and a video description into a Document.
// A Builder holds no per-request state and is safe for concurrent use.
type Builder struct {
	languages []string
	extractor BoundaryExtractor
}

// Option configures a Builder.
type Option func(*Builder)

// WithLanguages sets the ordered caption language allow-list.
func WithLanguages(langs []string) Option {
	return func(b *Builder) {
		if len(langs) > 0 {
			b.languages = langs
		}
	}
}

// WithBoundaryExtractor replaces the description timestamp scanner.
func WithBoundaryExtractor(e BoundaryExtractor) Option {
	return func(b *Builder) {
		if e != nil {
			b.extractor = e
		}
	}
}

// NewBuilder creates a Builder with DefaultLanguages and DescriptionTimestamps.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		languages: DefaultLanguages,
		extractor: DescriptionTimestamps{},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Languages returns the allow-list in use.
func (b *Builder) Languages() []string { return b.languages }

// ForLanguages returns a copy of b using langs as the allow-list.
// An empty langs returns b itself.
func (b *Builder) ForLanguages(langs []string) *Builder {
	if len(langs) == 0 {
		return b
	}
	cp := *b
	cp.languages = langs
	return &cp
}

// Build selects a track, fetches it and reflows it into paragraphs.
//
// When no track matches the allow-list, or the chosen track has no
// fragments, Build returns a Document with Available=false and the
// NoTranscriptNotice text. Only fetch failures are returned as errors.
func (b *Builder) Build(ctx context.Context, videoID string, set TrackSet, description string) (Document, error) {
	track, err := SelectTrack(set, b.languages)
	if errors.Is(err, ErrNoUsableTrack) {
		slog.Info("transcript: no usable track", slog.String("id", videoID))
		return unavailable(videoID), nil
	}

	fragments, err := set.Fetch(ctx, track.LanguageCode)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s track: %w", track.LanguageCode, err)
	}
	if len(fragments) == 0 {
		slog.Warn("transcript: empty track",
			slog.String("id", videoID), slog.String("lang", track.LanguageCode))
		return unavailable(videoID), nil
	}

	sentences := AssembleSentences(fragments)
	boundaries := b.extractor.Boundaries(description, fragments)
	text := Reflow(sentences, boundaries)

	slog.Debug("transcript: built",
		slog.String("id", videoID),
		slog.String("lang", track.LanguageCode),
		slog.Int("fragments", len(fragments)),
		slog.Int("sentences", len(sentences)),
		slog.Int("boundaries", len(boundaries)))

	return Document{
		VideoID:    videoID,
		Language:   track.LanguageCode,
		Text:       text,
		Paragraphs: CountParagraphs(text),
		Available:  true,
	}, nil
}

func unavailable(videoID string) Document {
	return Document{VideoID: videoID, Text: NoTranscriptNotice}
}
