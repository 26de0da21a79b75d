package transcript

import (
	"context"
	"errors"
	"strings"
)

var ErrNoTranscript = errors.New("no transcript available")

// Segment is one timed caption line. Start and Duration are in seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is a list of segments in playback order.
type Transcript []Segment

// Text joins every segment with a single space.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t))
	for _, seg := range t {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (Transcript, error)
}
