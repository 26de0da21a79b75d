package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/discord"
	"github.com/foxseedlab/ytsummary/internal/llm"
	"github.com/foxseedlab/ytsummary/internal/repository"
	"github.com/foxseedlab/ytsummary/internal/summary"
	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/foxseedlab/ytsummary/internal/video"
	"github.com/foxseedlab/ytsummary/internal/webhook"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	calls int
	err   error
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) (transcript.Transcript, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return transcript.Transcript{{Text: "hello", Start: 0, Duration: 1}, {Text: "world", Start: 1, Duration: 1}}, nil
}

type mockClient struct {
	reply string
	err   error
	calls int
}

func (m *mockClient) Complete(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.reply, m.err
}

type mockRepository struct {
	saved []repository.SaveArtifactInput
	err   error
}

func (m *mockRepository) SaveArtifacts(_ context.Context, inputs []repository.SaveArtifactInput) error {
	m.saved = append(m.saved, inputs...)
	return m.err
}

type mockWebhookSender struct {
	payloads []webhook.SummaryWebhookPayload
}

func (m *mockWebhookSender) SendSummary(_ context.Context, payload webhook.SummaryWebhookPayload) error {
	m.payloads = append(m.payloads, payload)
	return nil
}

type mockDiscordClient struct {
	fileCalls []discord.FileMessage
	err       error
}

func (m *mockDiscordClient) SendChannelMessageWithFile(msg discord.FileMessage) error {
	m.fileCalls = append(m.fileCalls, msg)
	return m.err
}

type fixture struct {
	cfg     *config.Config
	fetcher *mockFetcher
	clients []*mockClient
	repo    *mockRepository
	webhook *mockWebhookSender
	discord *mockDiscordClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		GeminiModel:    "gemini-2.0-flash",
		GPTModel:       "gpt-4o-mini",
		ClaudeModel:    "claude-3-5-haiku-latest",
		TranscriptsDir: filepath.Join(dir, "transcripts"),
		OutputsDir:     filepath.Join(dir, "outputs"),
	}
	require.NoError(t, cfg.EnsureDirs())
	return &fixture{
		cfg:     cfg,
		fetcher: &mockFetcher{},
		clients: []*mockClient{{reply: "gemini summary"}, {reply: "gpt summary"}, {reply: "claude summary"}},
		repo:    &mockRepository{},
		webhook: &mockWebhookSender{},
		discord: &mockDiscordClient{},
	}
}

// runner wires the fixture through the same DI graph main uses.
func (f *fixture) runner(t *testing.T) *Runner {
	t.Helper()
	injector := do.New()
	do.ProvideValue(injector, f.cfg)
	do.ProvideValue[transcript.Fetcher](injector, f.fetcher)
	do.ProvideValue(injector, llm.Services{
		{Name: "Gemini", Model: f.cfg.GeminiModel, Client: f.clients[0]},
		{Name: "GPT", Model: f.cfg.GPTModel, Client: f.clients[1]},
		{Name: "Claude", Model: f.cfg.ClaudeModel, Client: f.clients[2]},
	})
	do.ProvideValue[repository.Repository](injector, f.repo)
	do.ProvideValue[webhook.Sender](injector, f.webhook)
	do.ProvideValue[discord.Client](injector, f.discord)
	transcript.RegisterDI(injector)
	summary.RegisterDI(injector)
	RegisterDI(injector)

	r, err := do.Invoke[*Runner](injector)
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return r
}

func (f *fixture) totalLLMCalls() int {
	n := 0
	for _, c := range f.clients {
		n += c.calls
	}
	return n
}

func TestRun_Success(t *testing.T) {
	f := newFixture(t)
	report, err := f.runner(t).Run(context.Background(), Request{
		Video:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Suffix: "transcript",
	})
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", report.VideoID)
	assert.Equal(t, []string{
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_gemini-2.0-flash_summary.md"),
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_gpt-4o-mini_summary.md"),
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_claude-3-5-haiku-latest_summary.md"),
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_combined_summary.md"),
	}, report.Paths())
	assert.FileExists(t, filepath.Join(f.cfg.TranscriptsDir, "dQw4w9WgXcQ_transcript.json"))
	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, 3, f.totalLLMCalls())

	require.Len(t, f.repo.saved, 4)
	for _, in := range f.repo.saved[:3] {
		assert.Equal(t, repository.ArtifactStatusWritten, in.Status)
	}
	assert.Equal(t, repository.CombinedService, f.repo.saved[3].Service)

	assert.Empty(t, f.webhook.payloads)
	assert.Empty(t, f.discord.fileCalls)
}

func TestRun_SecondRunReusesCaches(t *testing.T) {
	f := newFixture(t)
	r := f.runner(t)
	req := Request{Video: "dQw4w9WgXcQ", Suffix: "transcript"}

	_, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	report, err := r.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, 3, f.totalLLMCalls())
	assert.Equal(t, []string{
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_gemini-2.0-flash_summary.md"),
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_gpt-4o-mini_summary.md"),
		filepath.Join(f.cfg.OutputsDir, "dQw4w9WgXcQ_transcript_claude-3-5-haiku-latest_summary.md"),
		report.Output.CombinedPath,
	}, report.Paths())
	for _, in := range f.repo.saved[4:7] {
		assert.Equal(t, repository.ArtifactStatusCached, in.Status)
	}

	req.Force = true
	report, err = r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, 6, f.totalLLMCalls())
	assert.Len(t, report.Paths(), 4)
}

func TestRun_InvalidVideoRejectedBeforeIO(t *testing.T) {
	f := newFixture(t)
	_, err := f.runner(t).Run(context.Background(), Request{Video: "abc!def@ghi", Suffix: "transcript"})
	require.ErrorIs(t, err, video.ErrInvalidID)
	assert.Zero(t, f.fetcher.calls)
	assert.Zero(t, f.totalLLMCalls())

	entries, err := os.ReadDir(f.cfg.OutputsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_InvalidSuffix(t *testing.T) {
	f := newFixture(t)
	for _, suffix := range []string{"", "  ", "../escape", `a\b`, ".."} {
		_, err := f.runner(t).Run(context.Background(), Request{Video: "dQw4w9WgXcQ", Suffix: suffix})
		assert.ErrorIs(t, err, ErrInvalidSuffix, suffix)
	}
	assert.Zero(t, f.fetcher.calls)
}

func TestRun_TranscriptFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = transcript.ErrNoTranscript

	_, err := f.runner(t).Run(context.Background(), Request{Video: "dQw4w9WgXcQ", Suffix: "transcript"})
	require.ErrorIs(t, err, transcript.ErrNoTranscript)
	assert.Zero(t, f.totalLLMCalls())
	assert.Empty(t, f.repo.saved)
}

func TestRun_OneServiceFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.clients[2].err = errors.New("overloaded")

	report, err := f.runner(t).Run(context.Background(), Request{Video: "dQw4w9WgXcQ", Suffix: "transcript"})
	require.NoError(t, err)
	require.Len(t, report.Paths(), 3)

	combined, err := os.ReadFile(report.Output.CombinedPath)
	require.NoError(t, err)
	assert.Contains(t, string(combined), "Error generating claude-3-5-haiku-latest summary: overloaded")

	require.Len(t, f.repo.saved, 4)
	assert.Equal(t, repository.ArtifactStatusFailed, f.repo.saved[2].Status)
	assert.Equal(t, "overloaded", f.repo.saved[2].Error)
	assert.Empty(t, f.repo.saved[2].Path)
}

func TestRun_LedgerFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.repo.err = errors.New("db down")

	_, err := f.runner(t).Run(context.Background(), Request{Video: "dQw4w9WgXcQ", Suffix: "transcript"})
	assert.NoError(t, err)
}

func TestRun_DeliversWhenConfigured(t *testing.T) {
	f := newFixture(t)
	f.cfg.SummaryWebhookURL = "https://hooks.example.com/summary"
	f.cfg.DiscordToken = "token"
	f.cfg.DiscordChannelID = "chan-1"
	f.clients[1].err = errors.New("quota exceeded")
	f.discord.err = errors.New("discord down")

	report, err := f.runner(t).Run(context.Background(), Request{Video: "dQw4w9WgXcQ", Suffix: "notes"})
	require.NoError(t, err)

	require.Len(t, f.webhook.payloads, 1)
	p := f.webhook.payloads[0]
	assert.Equal(t, webhook.SummaryWebhookSchemaVersion, p.SchemaVersion)
	assert.Equal(t, "dQw4w9WgXcQ", p.VideoID)
	assert.Equal(t, "notes", p.Suffix)
	assert.Equal(t, "2026-10-15T09:00:00Z", p.GeneratedAt)
	assert.Equal(t, report.Output.CombinedPath, p.CombinedPath)
	assert.Contains(t, p.CombinedMarkdown, "# Combined Video Summary: dQw4w9WgXcQ")
	require.Len(t, p.Artifacts, 3)
	assert.Equal(t, "failed", p.Artifacts[1].Status)
	assert.Equal(t, "quota exceeded", p.Artifacts[1].Error)
	assert.Empty(t, p.Artifacts[1].Path)
	assert.Equal(t, "written", p.Artifacts[0].Status)

	require.Len(t, f.discord.fileCalls, 1)
	msg := f.discord.fileCalls[0]
	assert.Equal(t, "chan-1", msg.ChannelID)
	assert.Equal(t, "dQw4w9WgXcQ_notes_combined_summary.md", msg.Filename)
	assert.Equal(t, p.CombinedMarkdown, string(msg.FileBody))
	assert.Contains(t, msg.Content, "https://youtu.be/dQw4w9WgXcQ")
	assert.Contains(t, msg.Content, "GPT (gpt-4o-mini) failed: quota exceeded")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abc", 2))
}

func TestRequestNormalize(t *testing.T) {
	got, err := Request{Video: "https://youtu.be/dQw4w9WgXcQ?t=42", Suffix: "notes", Force: true}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Request{Video: "dQw4w9WgXcQ", Suffix: "notes", Force: true}, got)

	_, err = Request{Video: "https://example.com/watch?v=dQw4w9WgXcQ", Suffix: "notes"}.Normalize()
	assert.ErrorIs(t, err, video.ErrInvalidID)

	_, err = Request{Video: "dQw4w9WgXcQ", Suffix: "a/b"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidSuffix)
}
