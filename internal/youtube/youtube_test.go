package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoID = "abcdefghijk"

const testTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0" dur="2.5">Welcome back</text>
<text start="2.5" dur="1.5">to the channel.</text>
<text start="4" dur="3">I&amp;#39;m going to</text>
<text start="7" dur="3">&lt;i&gt;talk&lt;/i&gt; about Go.</text>
<text start="10" dur="1"></text>
<text start="11" dur="4">Let&amp;#39;s start!</text>
</transcript>`

type fakeYouTube struct {
	*httptest.Server
	watchStatus  int
	playerCalls  int
	dataAPIKeys  []string
	description  string
	captionsJSON string
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{watchStatus: http.StatusOK, description: "0:00 Intro\n0:07 Go"}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if f.watchStatus != http.StatusOK {
			w.WriteHeader(f.watchStatus)
			return
		}
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;var meta = {};</script></html>`, f.playerJSON())
	})
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		f.playerCalls++
		fmt.Fprint(w, f.playerJSON())
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "fmt=srv3") {
			http.Error(w, "srv3 not expected", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, testTimedText)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		f.dataAPIKeys = append(f.dataAPIKeys, key)
		if key != "good" {
			http.Error(w, `{"error":{"code":403,"message":"quota"}}`, http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `{"items":[{"id":%q,"snippet":{"title":"T","description":%q}}]}`, r.URL.Query().Get("id"), "API: "+f.description)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeYouTube) playerJSON() string {
	captions := f.captionsJSON
	if captions == "" {
		captions = fmt.Sprintf(`{"playerCaptionsTracklistRenderer":{"captionTracks":[
			{"baseUrl":"%[1]s/api/timedtext?v=x&lang=en&kind=asr","languageCode":"en","kind":"asr","name":{"simpleText":"English (auto-generated)"}},
			{"baseUrl":"%[1]s/api/timedtext?v=x&lang=de&exp=xpe","languageCode":"de","name":{"simpleText":"German"}},
			{"baseUrl":"%[1]s/api/timedtext?v=x&lang=en-GB&fmt=srv3","languageCode":"en-GB","name":{"simpleText":"English (UK)"}}
		]}}`, f.URL)
	}
	return fmt.Sprintf(`{"captions":%s,"videoDetails":{"videoId":%q,"title":"Test","shortDescription":%q}}`,
		captions, testVideoID, f.description)
}

func (f *fakeYouTube) client(keys ...string) *Client {
	c := NewClient(Options{HTTPClient: f.Server.Client(), APIKeys: keys})
	c.watchURL = f.URL + "/watch?v="
	c.playerURL = f.URL + "/player"
	c.dataAPIBase = f.URL
	return c
}

func TestParseTimedText(t *testing.T) {
	frags, err := parseTimedText([]byte(testTimedText))
	require.NoError(t, err)
	require.Len(t, frags, 5, "empty lines are skipped")
	assert.Equal(t, transcript.Fragment{Text: "Welcome back", Start: 0, Duration: 2.5}, frags[0])
	assert.Equal(t, "I'm going to", frags[2].Text)
	assert.Equal(t, "talk about Go.", frags[3].Text)
	assert.Equal(t, transcript.Fragment{Text: "Let's start!", Start: 11, Duration: 4}, frags[4])

	markupOnly := `<transcript><text start="0" dur="2">Done.</text>` +
		`<text start="2" dur="3">&lt;font color="#fff"&gt;&lt;/font&gt;</text></transcript>`
	frags, err = parseTimedText([]byte(markupOnly))
	require.NoError(t, err)
	require.Len(t, frags, 2, "markup-only body keeps its timing")
	assert.Equal(t, transcript.Fragment{Text: "", Start: 2, Duration: 3}, frags[1])

	_, err = parseTimedText(nil)
	assert.Error(t, err)
	_, err = parseTimedText([]byte("<transcript><text"))
	assert.Error(t, err)
}

func TestListTracks(t *testing.T) {
	f := newFakeYouTube(t)
	tl, err := f.client().ListTracks(context.Background(), testVideoID)
	require.NoError(t, err)

	assert.Equal(t, testVideoID, tl.VideoID())
	assert.Equal(t, []transcript.Track{
		{LanguageCode: "en", Name: "English (auto-generated)", Generated: true},
		{LanguageCode: "en-GB", Name: "English (UK)"},
	}, tl.Tracks(), "PoToken tracks are dropped")

	frags, err := tl.Fetch(context.Background(), "en-GB")
	require.NoError(t, err)
	assert.Len(t, frags, 5)

	_, err = tl.Fetch(context.Background(), "fr")
	assert.Error(t, err)
	assert.Zero(t, f.playerCalls)
}

func TestListTracksAndroidFallback(t *testing.T) {
	f := newFakeYouTube(t)
	f.watchStatus = http.StatusNotFound

	tl, err := f.client().ListTracks(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.playerCalls)
	assert.Len(t, tl.Tracks(), 2)
}

func TestListTracksNoCaptions(t *testing.T) {
	f := newFakeYouTube(t)
	f.captionsJSON = "null"

	tl, err := f.client().ListTracks(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Empty(t, tl.Tracks())
}

func TestDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("data API with key rotation", func(t *testing.T) {
		f := newFakeYouTube(t)
		desc, err := f.client("bad", "good").Description(ctx, testVideoID)
		require.NoError(t, err)
		assert.Equal(t, "API: 0:00 Intro\n0:07 Go", desc)
		assert.Equal(t, []string{"bad", "good"}, f.dataAPIKeys)
	})

	t.Run("watch page without keys", func(t *testing.T) {
		f := newFakeYouTube(t)
		desc, err := f.client().Description(ctx, testVideoID)
		require.NoError(t, err)
		assert.Equal(t, "0:00 Intro\n0:07 Go", desc)
		assert.Empty(t, f.dataAPIKeys)
	})

	t.Run("watch page after all keys fail", func(t *testing.T) {
		f := newFakeYouTube(t)
		desc, err := f.client("bad").Description(ctx, testVideoID)
		require.NoError(t, err)
		assert.Equal(t, "0:00 Intro\n0:07 Go", desc)
	})

	t.Run("everything fails", func(t *testing.T) {
		f := newFakeYouTube(t)
		f.watchStatus = http.StatusNotFound
		_, err := f.client().Description(ctx, testVideoID)
		assert.Error(t, err)
	})
}

func TestBuildFromYouTube(t *testing.T) {
	f := newFakeYouTube(t)
	c := f.client()
	ctx := context.Background()

	tl, err := c.ListTracks(ctx, testVideoID)
	require.NoError(t, err)
	desc, err := c.Description(ctx, testVideoID)
	require.NoError(t, err)

	doc, err := transcript.NewBuilder().Build(ctx, testVideoID, tl, desc)
	require.NoError(t, err)
	assert.True(t, doc.Available)
	assert.Equal(t, "en-GB", doc.Language)
	assert.Equal(t, "Welcome back to the channel. I'm going to talk about Go. \n\nLet's start!", doc.Text)
	assert.Equal(t, 2, doc.Paragraphs)
}

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
		{"youtube?video=abc", "abc"},
		{"short", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVideoID(tt.in))
		})
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL("dQw4w9WgXcQ"))
}
