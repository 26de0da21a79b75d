package summary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/foxseedlab/ytsummary/internal/llm"
	"github.com/foxseedlab/ytsummary/internal/transcript"
)

// Result is the outcome of one service for one transcript. Exactly one of
// Content and Err is meaningful.
type Result struct {
	Service string
	Heading string
	Model   string
	Path    string
	Content string
	Cached  bool
	Written bool
	Err     error
}

// Section is the text embedded in the combined artifact for this service.
func (r Result) Section() string {
	if r.Err != nil {
		return errorPlaceholder(r.Model, r.Err)
	}
	return r.Content
}

type Output struct {
	Results      []Result
	CombinedPath string
}

// Paths lists the per-service artifacts on disk after this run, written or
// reused from cache, in service order, followed by the combined artifact.
// Failed services have no path.
func (o Output) Paths() []string {
	paths := make([]string, 0, len(o.Results)+1)
	for _, r := range o.Results {
		if r.Written || r.Cached {
			paths = append(paths, r.Path)
		}
	}
	return append(paths, o.CombinedPath)
}

type Generator struct {
	dir      string
	services llm.Services
	now      func() time.Time
}

func NewGenerator(dir string, services llm.Services) *Generator {
	return &Generator{dir: dir, services: services, now: time.Now}
}

func ServiceFilename(videoID, suffix, tag string) string {
	return fmt.Sprintf("%s_%s_%s_summary.md", videoID, suffix, tag)
}

func CombinedFilename(videoID, suffix string) string {
	return fmt.Sprintf("%s_%s_combined_summary.md", videoID, suffix)
}

// Generate runs every service in order and then rewrites the combined
// artifact. Per-service failures are reported in the results; only a failure
// to write the combined artifact is returned as an error.
func (g *Generator) Generate(ctx context.Context, videoID string, t transcript.Transcript, suffix string, force bool) (Output, error) {
	prompt := BuildPrompt(t.Text())

	results := make([]Result, 0, len(g.services))
	for _, svc := range g.services {
		results = append(results, g.runService(ctx, svc, videoID, suffix, prompt, force))
	}

	combined := filepath.Join(g.dir, CombinedFilename(videoID, suffix))
	if err := os.WriteFile(combined, []byte(buildCombinedMarkdown(videoID, results, g.now())), 0o644); err != nil {
		return Output{Results: results}, fmt.Errorf("write combined summary: %w", err)
	}
	slog.Info("combined summary written", "video_id", videoID, "path", combined)
	return Output{Results: results, CombinedPath: combined}, nil
}

func (g *Generator) runService(ctx context.Context, svc llm.Service, videoID, suffix, prompt string, force bool) Result {
	res := Result{
		Service: svc.Name,
		Heading: svc.SectionHeading(),
		Model:   svc.Model,
		Path:    filepath.Join(g.dir, ServiceFilename(videoID, suffix, svc.Tag())),
	}
	log := slog.With("video_id", videoID, "service", svc.Name, "model", svc.Model, "path", res.Path)

	if !force {
		existing, err := os.ReadFile(res.Path)
		switch {
		case err == nil:
			log.Info("summary cache hit")
			res.Content = string(existing)
			res.Cached = true
			return res
		case !errors.Is(err, fs.ErrNotExist):
			log.Error("failed to read cached summary", "error", err)
			res.Err = fmt.Errorf("read cached summary: %w", err)
			return res
		}
	}

	log.Info("generating summary")
	body, err := svc.Client.Complete(ctx, prompt)
	if err != nil {
		log.Error("summary generation failed", "error", err)
		res.Err = err
		return res
	}

	markdown := buildServiceMarkdown(videoID, svc.Model, body, g.now())
	if err := os.WriteFile(res.Path, []byte(markdown), 0o644); err != nil {
		log.Error("failed to write summary", "error", err)
		res.Err = fmt.Errorf("write summary: %w", err)
		return res
	}
	res.Content = body
	res.Written = true
	log.Info("summary written", "bytes", len(markdown))
	return res
}
