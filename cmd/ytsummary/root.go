package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/foxseedlab/ytsummary/external/config"
	discordimpl "github.com/foxseedlab/ytsummary/external/discord"
	llmimpl "github.com/foxseedlab/ytsummary/external/llm"
	repositoryimpl "github.com/foxseedlab/ytsummary/external/repository"
	webhookimpl "github.com/foxseedlab/ytsummary/external/webhook"
	"github.com/foxseedlab/ytsummary/external/youtube"
	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/pipeline"
	"github.com/foxseedlab/ytsummary/internal/summary"
	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var version = "dev"

// runFunc executes a validated request. Tests replace it to avoid network access.
type runFunc func(ctx context.Context, req pipeline.Request) (*pipeline.Report, error)

func newRootCommand(run runFunc) *cobra.Command {
	req := pipeline.Request{}
	var debug bool

	cmd := &cobra.Command{
		Use:   "ytsummary VIDEO_URL",
		Short: "Summarize a YouTube video with Gemini, GPT and Claude",
		Long: `ytsummary fetches the captions of a YouTube video, caches them on disk,
and asks each configured language model for a structured summary.

Per-model summaries and a combined summary are written as Markdown files.
Existing summaries are reused unless --force is given.`,
		Version:      version,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Video = args[0]
			normalized, err := req.Normalize()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := run
			if r == nil {
				if r, err = newPipelineRun(debug); err != nil {
					return err
				}
			}
			report, err := r(ctx, normalized)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.Flags().StringVarP(&req.Suffix, "suffix", "s", "transcript", "Suffix used in transcript and summary filenames")
	cmd.Flags().BoolVarP(&req.Force, "force", "f", false, "Regenerate summaries even when cached files exist")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}

func execute() error {
	return newRootCommand(nil).ExecuteContext(context.Background())
}

func printReport(w io.Writer, report *pipeline.Report) {
	fmt.Fprintln(w, "Successfully processed video! Output saved to:")
	for _, p := range report.Paths() {
		fmt.Fprintln(w, p)
	}
}

func newPipelineRun(debug bool) (runFunc, error) {
	cfg, err := configloader.Load()
	if err != nil {
		return nil, err
	}
	initLogger(cfg, debug)
	slog.Debug("configuration loaded", "env", cfg.Env)

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	runner, err := do.Invoke[*pipeline.Runner](setupDI(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return runner.Run, nil
}

func initLogger(cfg *config.Config, debug bool) {
	logLevel := slog.LevelInfo
	if debug || cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	youtube.RegisterDI(injector)
	transcript.RegisterDI(injector)
	llmimpl.RegisterDI(injector)
	summary.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	discordimpl.RegisterDI(injector)
	pipeline.RegisterDI(injector)

	return injector
}
