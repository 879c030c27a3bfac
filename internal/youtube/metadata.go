package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Description returns the free-text description of a video.
// Uses YouTube Data API v3 when keys are configured, rotating to the next key
// on failure (quota errors come back as 403); otherwise, or when every key
// fails, reads videoDetails.shortDescription from the watch page.
func (c *Client) Description(ctx context.Context, videoID string) (string, error) {
	engine.IncrMetadata()

	var lastErr error
	for i, key := range c.apiKeys {
		desc, err := c.dataAPIDescription(ctx, videoID, key)
		if err == nil {
			return desc, nil
		}
		lastErr = err
		slog.Debug("youtube data API key failed, trying fallback",
			slog.Int("key", i), slog.Any("error", err))
	}
	if lastErr != nil {
		slog.Warn("youtube: data API failed, scraping watch page",
			slog.String("id", videoID), slog.Any("error", lastErr))
	}

	pr, err := c.watchPagePlayer(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("description: %w", err)
	}
	if pr.VideoDetails == nil {
		return "", errors.New("no videoDetails in ytInitialPlayerResponse")
	}
	return pr.VideoDetails.ShortDescription, nil
}

func (c *Client) dataAPIDescription(ctx context.Context, videoID, apiKey string) (string, error) {
	engine.IncrDataAPI()
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	params.Set("key", apiKey)

	body, err := c.getBody(ctx, c.dataAPIBase+"/videos?"+params.Encode(),
		map[string]string{"User-Agent": engine.UserAgentBot}, 1024*1024)
	if err != nil {
		return "", fmt.Errorf("youtube data API: %w", err)
	}

	var result ytDataVideosResp
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode youtube data API: %w", err)
	}
	if len(result.Items) == 0 {
		return "", fmt.Errorf("video %s not found", videoID)
	}
	return result.Items[0].Snippet.Description, nil
}
