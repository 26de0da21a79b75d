// Package video resolves user input into canonical YouTube video identifiers.
package video

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidID = errors.New("invalid YouTube URL or video ID")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// pathPrefixes lists youtube.com path shapes whose next segment is the id.
var pathPrefixes = []string{"/embed/", "/shorts/", "/live/", "/v/"}

// ParseID extracts the video identifier from a watch, short-link, embed,
// shorts or live URL, or accepts a bare 11-character identifier.
func ParseID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidID)
	}
	if idPattern.MatchString(s) {
		return s, nil
	}

	id, ok := idFromURL(s)
	if !ok || !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

func idFromURL(s string) (string, bool) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		return firstSegment(u.Path), true
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if u.Path == "/watch" {
			return u.Query().Get("v"), true
		}
		for _, prefix := range pathPrefixes {
			if rest, found := strings.CutPrefix(u.Path, prefix); found {
				return firstSegment(rest), true
			}
		}
	}
	return "", false
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}
