// Package youtube fetches caption tracks and video descriptions from YouTube.
//
// The package is split by responsibility:
//
//	innertube.go endpoint constants and wire types
//	client.go    Client, rate limiting, watch page fetching
//	tracks.go    caption track listing (transcript.TrackSet) and timedtext parsing
//	metadata.go  video descriptions (Data API v3 with watch page fallback)
//	videoid.go   video URL / ID parsing
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	HTTPClient        *http.Client
	BrowserClient     *engine.BrowserClient // optional; used for watch page scraping
	APIKeys           []string              // Data API v3 keys, tried in order
	RequestsPerSecond float64               // <= 0 means unlimited
}

// Client talks to YouTube. All collaborators are passed in; it holds no globals.
type Client struct {
	http    *http.Client
	browser *engine.BrowserClient
	apiKeys []string
	limiter *rate.Limiter

	watchURL    string
	playerURL   string
	dataAPIBase string
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	var keys []string
	for _, k := range opts.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		http:        hc,
		browser:     opts.BrowserClient,
		apiKeys:     keys,
		limiter:     limiter,
		watchURL:    ytWatchURL,
		playerURL:   ytInnertubeURL,
		dataAPIBase: ytDataAPIBase,
	}
}

// FromConfig builds a Client from the engine configuration.
func FromConfig(c *engine.Config) *Client {
	keys := []string{c.YouTubeAPIKey}
	if c.YouTubeAPIKeyFallback != "" {
		keys = append(keys, c.YouTubeAPIKeyFallback)
	}
	return NewClient(Options{
		HTTPClient:        c.HTTPClient,
		BrowserClient:     c.BrowserClient,
		APIKeys:           keys,
		RequestsPerSecond: c.RequestsPerSecond,
	})
}

// do sends a request built by build, waiting for the rate limiter first.
// Transient failures are retried with the default stealth retry policy.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := build()
		if err != nil {
			return nil, err
		}
		return c.http.Do(req)
	})
}

// getBody GETs u and returns at most limit bytes of a 200 response body.
func (c *Client) getBody(ctx context.Context, u string, headers map[string]string, limit int64) ([]byte, error) {
	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// watchPagePlayer scrapes the watch page and decodes its ytInitialPlayerResponse.
// Uses the TLS-fingerprinting browser client when configured.
func (c *Client) watchPagePlayer(ctx context.Context, videoID string) (*playerResp, error) {
	engine.IncrWatchPage()
	u := c.watchURL + videoID

	var body []byte
	if c.browser != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := c.browser.Do(http.MethodGet, u, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("watch page: %w", err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("watch page status %d", status)
		}
		body = data
	} else {
		data, err := c.getBody(ctx, u, map[string]string{
			"User-Agent":      engine.RandomUserAgent(),
			"Accept-Language": "en-US,en;q=0.9",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		}, 6*1024*1024)
		if err != nil {
			return nil, fmt.Errorf("watch page: %w", err)
		}
		body = data
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	var pr playerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// androidPlayer calls the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func (c *Client) androidPlayer(ctx context.Context, videoID string) (*playerResp, error) {
	engine.IncrInnertube()
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.playerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("android innertube status %d", resp.StatusCode)
	}

	var pr playerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &pr, nil
}

// player returns the player response, trying the watch page first.
func (c *Client) player(ctx context.Context, videoID string) (*playerResp, error) {
	pr, err := c.watchPagePlayer(ctx, videoID)
	if err == nil && pr.Captions != nil {
		return pr, nil
	}
	if err != nil {
		slog.Warn("youtube: page scrape failed, trying player",
			slog.String("id", videoID), slog.Any("error", err))
	}
	alt, altErr := c.androidPlayer(ctx, videoID)
	if altErr != nil {
		if err == nil {
			return pr, nil
		}
		return nil, altErr
	}
	return alt, nil
}
