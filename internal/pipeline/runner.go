package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/discord"
	"github.com/foxseedlab/ytsummary/internal/repository"
	"github.com/foxseedlab/ytsummary/internal/summary"
	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/foxseedlab/ytsummary/internal/video"
	"github.com/foxseedlab/ytsummary/internal/webhook"
)

var ErrInvalidSuffix = errors.New("invalid suffix")

type Request struct {
	Video  string
	Suffix string
	Force  bool
}

type Report struct {
	VideoID string
	Suffix  string
	Output  summary.Output
}

// Normalize resolves Video to a bare video ID and checks Suffix. It performs
// no I/O.
func (req Request) Normalize() (Request, error) {
	videoID, err := video.ParseID(req.Video)
	if err != nil {
		return Request{}, err
	}
	if err := validateSuffix(req.Suffix); err != nil {
		return Request{}, err
	}
	req.Video = videoID
	return req, nil
}

// Paths lists every artifact produced or reused by the run.
func (r *Report) Paths() []string {
	return r.Output.Paths()
}

// Runner executes one fetch-then-summarize run. Steps run sequentially.
type Runner struct {
	cfg         *config.Config
	transcripts *transcript.Provider
	summaries   *summary.Generator
	repo        repository.Repository
	webhook     webhook.Sender
	discord     discord.Client
	now         func() time.Time
}

func NewRunner(cfg *config.Config, transcripts *transcript.Provider, summaries *summary.Generator, repo repository.Repository, wh webhook.Sender, dc discord.Client) *Runner {
	return &Runner{
		cfg:         cfg,
		transcripts: transcripts,
		summaries:   summaries,
		repo:        repo,
		webhook:     wh,
		discord:     dc,
		now:         time.Now,
	}
}

func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	videoID := req.Video
	slog.Info("processing video", "video_id", videoID, "suffix", req.Suffix, "force", req.Force)

	t, err := r.transcripts.Get(ctx, videoID, req.Suffix)
	if err != nil {
		return nil, err
	}

	out, err := r.summaries.Generate(ctx, videoID, t, req.Suffix, req.Force)
	if err != nil {
		return nil, err
	}

	report := &Report{VideoID: videoID, Suffix: req.Suffix, Output: out}
	r.record(ctx, report)
	r.deliver(ctx, report)
	return report, nil
}

func validateSuffix(suffix string) error {
	if strings.TrimSpace(suffix) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidSuffix)
	}
	if strings.ContainsAny(suffix, `/\`) || suffix == "." || suffix == ".." {
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidSuffix, suffix)
	}
	return nil
}

func (r *Runner) record(ctx context.Context, report *Report) {
	inputs := make([]repository.SaveArtifactInput, 0, len(report.Output.Results)+1)
	for _, res := range report.Output.Results {
		in := repository.SaveArtifactInput{
			VideoID: report.VideoID,
			Suffix:  report.Suffix,
			Service: res.Service,
			Model:   res.Model,
			Path:    res.Path,
			Status:  artifactStatus(res),
		}
		if res.Err != nil {
			in.Path = ""
			in.Error = res.Err.Error()
		}
		inputs = append(inputs, in)
	}
	inputs = append(inputs, repository.SaveArtifactInput{
		VideoID: report.VideoID,
		Suffix:  report.Suffix,
		Service: repository.CombinedService,
		Path:    report.Output.CombinedPath,
		Status:  repository.ArtifactStatusWritten,
	})
	if err := r.repo.SaveArtifacts(ctx, inputs); err != nil {
		slog.Error("failed to record summary artifacts", "error", err, "video_id", report.VideoID)
	}
}

func (r *Runner) deliver(ctx context.Context, report *Report) {
	if r.cfg.SummaryWebhookURL == "" && r.cfg.DiscordToken == "" {
		return
	}
	combined, err := os.ReadFile(report.Output.CombinedPath)
	if err != nil {
		slog.Error("failed to read combined summary for delivery", "error", err, "path", report.Output.CombinedPath)
		return
	}

	if r.cfg.SummaryWebhookURL != "" {
		if err := r.webhook.SendSummary(ctx, r.buildWebhookPayload(report, combined)); err != nil {
			slog.Error("failed to send summary webhook", "error", err, "video_id", report.VideoID)
		}
	}
	if r.cfg.DiscordToken != "" {
		if err := r.discord.SendChannelMessageWithFile(discord.FileMessage{
			ChannelID: r.cfg.DiscordChannelID,
			Content:   discordMessage(report),
			Filename:  filepath.Base(report.Output.CombinedPath),
			FileBody:  combined,
		}); err != nil {
			slog.Error("failed to post summary to discord", "error", err, "video_id", report.VideoID)
		}
	}
}

func (r *Runner) buildWebhookPayload(report *Report, combined []byte) webhook.SummaryWebhookPayload {
	artifacts := make([]webhook.SummaryWebhookArtifact, 0, len(report.Output.Results))
	for _, res := range report.Output.Results {
		a := webhook.SummaryWebhookArtifact{
			Service: res.Service,
			Model:   res.Model,
			Status:  string(artifactStatus(res)),
		}
		if res.Err != nil {
			a.Error = res.Err.Error()
		} else {
			a.Path = res.Path
		}
		artifacts = append(artifacts, a)
	}
	return webhook.SummaryWebhookPayload{
		SchemaVersion:    webhook.SummaryWebhookSchemaVersion,
		VideoID:          report.VideoID,
		Suffix:           report.Suffix,
		GeneratedAt:      r.now().Format(time.RFC3339),
		Artifacts:        artifacts,
		CombinedPath:     report.Output.CombinedPath,
		CombinedMarkdown: string(combined),
	}
}

func artifactStatus(res summary.Result) repository.ArtifactStatus {
	switch {
	case res.Err != nil:
		return repository.ArtifactStatusFailed
	case res.Cached:
		return repository.ArtifactStatusCached
	default:
		return repository.ArtifactStatusWritten
	}
}
