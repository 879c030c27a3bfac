package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"golang.org/x/net/html"
)

// TrackList is the caption track set of one video. It implements transcript.TrackSet.
// Tracks are listed in the order YouTube reports them; nothing is fetched until Fetch.
type TrackList struct {
	client  *Client
	videoID string
	tracks  []captionTrack
}

var _ transcript.TrackSet = (*TrackList)(nil)

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// ListTracks lists the caption tracks of a video.
// Primary:  scrape watch page ytInitialPlayerResponse (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
func (c *Client) ListTracks(ctx context.Context, videoID string) (*TrackList, error) {
	engine.IncrTrackList()

	pr, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tl := &TrackList{client: c, videoID: videoID}
	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Reason != "" {
			slog.Info("youtube: captions unavailable",
				slog.String("id", videoID), slog.String("reason", pr.PlayabilityStatus.Reason))
		}
		return tl, nil
	}
	for _, t := range pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		if needsPoToken(t.BaseURL) {
			slog.Debug("youtube: skipping PoToken track",
				slog.String("id", videoID), slog.String("lang", t.LanguageCode))
			continue
		}
		tl.tracks = append(tl.tracks, t)
	}
	return tl, nil
}

// VideoID returns the video the tracks belong to.
func (tl *TrackList) VideoID() string { return tl.videoID }

// Tracks implements transcript.TrackSet.
func (tl *TrackList) Tracks() []transcript.Track {
	out := make([]transcript.Track, 0, len(tl.tracks))
	for _, t := range tl.tracks {
		out = append(out, transcript.Track{
			LanguageCode: t.LanguageCode,
			Name:         t.Name.SimpleText,
			Generated:    t.Kind == "asr",
		})
	}
	return out
}

// Fetch downloads the track for languageCode, preferring a manually created one.
func (tl *TrackList) Fetch(ctx context.Context, languageCode string) ([]transcript.Fragment, error) {
	t, ok := tl.find(languageCode)
	if !ok {
		return nil, fmt.Errorf("no %q caption track for %s", languageCode, tl.videoID)
	}
	return tl.client.fetchTimedText(ctx, t.BaseURL)
}

func (tl *TrackList) find(code string) (captionTrack, bool) {
	var generated *captionTrack
	for i, t := range tl.tracks {
		if t.LanguageCode != code {
			continue
		}
		if t.Kind != "asr" {
			return t, true
		}
		if generated == nil {
			generated = &tl.tracks[i]
		}
	}
	if generated != nil {
		return *generated, true
	}
	return captionTrack{}, false
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]transcript.Fragment, error) {
	engine.IncrTrackFetch()
	// srv3 is a different XML dialect; the default format carries start/dur attributes.
	u := strings.Replace(baseURL, "&fmt=srv3", "", 1)
	body, err := c.getBody(ctx, u, map[string]string{"User-Agent": engine.UserAgentBot}, 2*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return parseTimedText(body)
}

// parseTimedText decodes timedtext XML into fragments.
// Entities are decoded once more after XML unescaping (YouTube double-escapes
// apostrophes), and inline markup such as <font> is stripped. Elements without
// a body are skipped; a body that strips down to nothing still yields a
// fragment so its timing is kept.
func parseTimedText(body []byte) ([]transcript.Fragment, error) {
	if len(body) == 0 {
		return nil, errors.New("empty timedtext response")
	}
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	fragments := make([]transcript.Fragment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		text := engine.StripTags(html.UnescapeString(line.Text))
		fragments = append(fragments, transcript.Fragment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	return fragments, nil
}
