package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/foxseedlab/ytsummary/internal/transcript"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 8 << 20
	maxTimedTextBytes = 4 << 20
)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Languages  []string
}

// CaptionFetcher reads published captions from the watch page's player
// response and the timedtext endpoint it points to.
type CaptionFetcher struct {
	baseURL string
	client  *http.Client
	langs   []string
}

func NewCaptionFetcher(cfg Config) transcript.Fetcher {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &CaptionFetcher{baseURL: baseURL, client: client, langs: langs}
}

func (f *CaptionFetcher) Fetch(ctx context.Context, videoID string) (transcript.Transcript, error) {
	tracks, err := f.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	track, ok := pickBestTrack(tracks, f.langs)
	if !ok {
		return nil, fmt.Errorf("%w: every caption track requires a browser token", transcript.ErrNoTranscript)
	}
	slog.Debug("caption track selected", "video_id", videoID, "language", track.LanguageCode, "kind", track.Kind)
	return f.timedText(ctx, track.BaseURL)
}

func (f *CaptionFetcher) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := f.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	body, err := f.get(ctx, watchURL, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("player response not found in watch page")
	}
	raw := extractJSONObject(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("player response is truncated")
	}

	var resp playerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", transcript.ErrNoTranscript, resp.PlayabilityStatus.Reason)
		}
		return nil, fmt.Errorf("%w: video has no captions", transcript.ErrNoTranscript)
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks", transcript.ErrNoTranscript)
	}
	return tracks, nil
}

func (f *CaptionFetcher) timedText(ctx context.Context, trackURL string) (transcript.Transcript, error) {
	body, err := f.get(ctx, trackURL, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	out := make(transcript.Transcript, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		out = append(out, transcript.Segment{Text: text, Start: line.Start, Duration: line.Duration})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: caption track is empty", transcript.ErrNoTranscript)
	}
	return out, nil
}

func (f *CaptionFetcher) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// pickBestTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track. Tracks that need a PoToken
// cannot be fetched outside a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !strings.Contains(t.BaseURL, "&exp=xpe") {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// Caption text arrives entity-encoded once by XML and again by YouTube.
func cleanCaption(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

// extractJSONObject returns the leading balanced JSON object in b, or nil.
func extractJSONObject(b []byte) []byte {
	start := bytes.IndexByte(b, '{')
	if start < 0 {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(b); i++ {
		c := b[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[start : i+1]
			}
		}
	}
	return nil
}
