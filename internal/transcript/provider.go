package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Provider serves transcripts from the cache directory, fetching and caching
// them on a miss.
type Provider struct {
	dir     string
	fetcher Fetcher
}

func NewProvider(dir string, fetcher Fetcher) *Provider {
	return &Provider{dir: dir, fetcher: fetcher}
}

// CacheFilename is the file a freshly fetched transcript is written to.
func CacheFilename(videoID, suffix string) string {
	return fmt.Sprintf("%s_%s.json", videoID, suffix)
}

// Get returns the cached transcript for videoID if any suffix has one.
// An exact suffix match is preferred, then the lexicographically first file.
// Otherwise the transcript is fetched and written under the requested suffix.
func (p *Provider) Get(ctx context.Context, videoID, suffix string) (Transcript, error) {
	cached, err := p.findCached(videoID, suffix)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		slog.Info("transcript cache hit", "video_id", videoID, "path", cached)
		return readTranscript(cached)
	}

	slog.Info("fetching transcript", "video_id", videoID)
	t, err := p.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}

	path := filepath.Join(p.dir, CacheFilename(videoID, suffix))
	if err := writeTranscript(path, t); err != nil {
		return nil, err
	}
	slog.Info("transcript cached", "video_id", videoID, "path", path, "segments", len(t))
	return t, nil
}

func (p *Provider) findCached(videoID, suffix string) (string, error) {
	exact := filepath.Join(p.dir, CacheFilename(videoID, suffix))
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	matches, err := filepath.Glob(filepath.Join(p.dir, videoID+"_*.json"))
	if err != nil {
		return "", fmt.Errorf("search transcript cache: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}

func readTranscript(path string) (Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cached transcript: %w", err)
	}
	var t Transcript
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode cached transcript %s: %w", path, err)
	}
	return t, nil
}

// writeTranscript refuses to replace an existing file.
func writeTranscript(path string, t Transcript) error {
	if t == nil {
		t = Transcript{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create transcript cache: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write transcript cache: %w", err)
	}
	return f.Close()
}
