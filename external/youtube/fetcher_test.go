package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.2">Hello &amp;#39;world&amp;#39;</text>` +
	`<text start="1.7" dur="2">   </text>` +
	`<text start="3.7" dur="1.5">line
break</text>` +
	`</transcript>`

func newYouTubeServer(t *testing.T, playerJSON func(base string) string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "dQw4w9WgXcQ" {
			t.Errorf("unexpected video id: %s", r.URL.RawQuery)
		}
		_, _ = fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;var meta = {};</script></html>`, playerJSON(srv.URL))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "en" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(timedTextXML))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_ParsesCaptionTrack(t *testing.T) {
	srv := newYouTubeServer(t, func(base string) string {
		return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
			`{"baseUrl":"%[1]s/api/timedtext?v=x&lang=de","languageCode":"de"},`+
			`{"baseUrl":"%[1]s/api/timedtext?v=x&lang=en","languageCode":"en","kind":"asr"}`+
			`]}},"videoDetails":{"title":"a } tricky \" title"}}`, base)
	})

	f := NewCaptionFetcher(Config{BaseURL: srv.URL, HTTPClient: srv.Client(), Languages: []string{"en"}})
	got, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, transcript.Transcript{
		{Text: "Hello 'world'", Start: 0.5, Duration: 1.2},
		{Text: "line break", Start: 3.7, Duration: 1.5},
	}, got)
}

func TestFetch_NoCaptions(t *testing.T) {
	srv := newYouTubeServer(t, func(string) string {
		return `{"playabilityStatus":{"status":"OK"}}`
	})

	f := NewCaptionFetcher(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, transcript.ErrNoTranscript)
}

func TestFetch_UnplayableReason(t *testing.T) {
	srv := newYouTubeServer(t, func(string) string {
		return `{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`
	})

	f := NewCaptionFetcher(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.ErrorIs(t, err, transcript.ErrNoTranscript)
	assert.Contains(t, err.Error(), "Video unavailable")
}

func TestFetch_WatchPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewCaptionFetcher(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPickBestTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "a", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "b", LanguageCode: "ja"},
		{BaseURL: "c", LanguageCode: "en"},
		{BaseURL: "d&exp=xpe", LanguageCode: "fr"},
	}

	got, ok := pickBestTrack(tracks, []string{"en"})
	require.True(t, ok)
	assert.Equal(t, "c", got.BaseURL)

	got, ok = pickBestTrack(tracks, []string{"ja", "en"})
	require.True(t, ok)
	assert.Equal(t, "b", got.BaseURL)

	got, ok = pickBestTrack(tracks, []string{"fr"})
	require.True(t, ok)
	assert.Equal(t, "a", got.BaseURL)

	_, ok = pickBestTrack([]captionTrack{{BaseURL: "x&exp=xpe"}}, []string{"en"})
	assert.False(t, ok)
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":{"b":"}"}}`, string(extractJSONObject([]byte(` {"a":{"b":"}"}};rest`))))
	assert.Equal(t, `{"q":"\"{"}`, string(extractJSONObject([]byte(`{"q":"\"{"} trailing`))))
	assert.Nil(t, extractJSONObject([]byte(`{"open":`)))
	assert.Nil(t, extractJSONObject([]byte(`no object`)))
}
