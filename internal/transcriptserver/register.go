package transcriptserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TrackProvider lists the caption tracks of a video.
type TrackProvider interface {
	ListTracks(ctx context.Context, videoID string) (*youtube.TrackList, error)
}

// MetadataProvider returns the free-text description of a video.
type MetadataProvider interface {
	Description(ctx context.Context, videoID string) (string, error)
}

// Service answers transcript requests. Collaborators are injected so the
// service can run against fakes in tests.
type Service struct {
	tracks   tracksFunc
	metadata MetadataProvider
	builder  *transcript.Builder
}

type tracksFunc func(ctx context.Context, videoID string) (transcript.TrackSet, error)

// NewService wires providers and a builder into a Service.
func NewService(tracks TrackProvider, metadata MetadataProvider, builder *transcript.Builder) *Service {
	return &Service{
		tracks: func(ctx context.Context, id string) (transcript.TrackSet, error) {
			return tracks.ListTracks(ctx, id)
		},
		metadata: metadata,
		builder:  builder,
	}
}

// RegisterTools registers the youtube_transcript tool on the given MCP server.
func RegisterTools(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Turn the manually created captions of a YouTube video into a readable article. Sentences are rebuilt from caption fragments and split into paragraphs at the chapter timestamps listed in the video description. Accepts a video URL or ID. Returns the article text, the caption language used, and the paragraph count; available=false when the video has no captions in an accepted language.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TranscriptOutput, error) {
		out, err := svc.Transcript(ctx, input)
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		return nil, out, nil
	})
}

// Transcript builds (or loads from cache) the article for one video.
func (s *Service) Transcript(ctx context.Context, input engine.TranscriptInput) (engine.TranscriptOutput, error) {
	engine.IncrTranscriptRequests()
	if strings.TrimSpace(input.Video) == "" {
		return engine.TranscriptOutput{}, fmt.Errorf("video is required")
	}
	videoID := youtube.ParseVideoID(input.Video)

	builder := s.builder.ForLanguages(input.Languages)

	cacheKey := engine.CacheKey("youtube_transcript", videoID, fmt.Sprint(input.HTML), strings.Join(builder.Languages(), ","))
	if out, ok := engine.CacheLoadJSON[engine.TranscriptOutput](ctx, cacheKey); ok {
		return out, nil
	}

	var doc transcript.Document
	err := engine.TrackOperation(ctx, "youtube_transcript", func(ctx context.Context) error {
		var err error
		doc, err = s.build(ctx, builder, videoID)
		return err
	})
	if err != nil {
		engine.IncrTranscriptErrors()
		slog.Warn("youtube_transcript: build failed", slog.String("id", videoID), slog.Any("error", err))
		return engine.TranscriptOutput{}, err
	}
	if !doc.Available {
		engine.IncrNoCaptions()
	}

	text := doc.Text
	if input.HTML {
		text = doc.HTML()
	}
	out := engine.TranscriptOutput{
		VideoID:    videoID,
		VideoURL:   youtube.WatchURL(videoID),
		EmbedURL:   youtube.EmbedURL(videoID),
		Language:   doc.Language,
		Available:  doc.Available,
		Paragraphs: doc.Paragraphs,
		Text:       text,
	}
	engine.CacheStoreJSON(ctx, cacheKey, out)
	slog.Info("youtube_transcript: done",
		slog.String("id", videoID),
		slog.Bool("available", doc.Available),
		slog.Int("paragraphs", doc.Paragraphs),
		slog.String("preview", engine.TruncateRunes(doc.Text, 80, "…")))
	return out, nil
}

// build lists tracks first; the description is only fetched when a usable track exists.
func (s *Service) build(ctx context.Context, builder *transcript.Builder, videoID string) (transcript.Document, error) {
	set, err := s.tracks(ctx, videoID)
	if err != nil {
		return transcript.Document{}, fmt.Errorf("list tracks: %w", err)
	}
	if _, err := transcript.SelectTrack(set, builder.Languages()); err != nil {
		return builder.Build(ctx, videoID, set, "")
	}
	description, err := s.metadata.Description(ctx, videoID)
	if err != nil {
		return transcript.Document{}, fmt.Errorf("video metadata: %w", err)
	}
	return builder.Build(ctx, videoID, set, description)
}
