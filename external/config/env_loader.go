package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/ytsummary/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                 string        `env:"ENV" envDefault:"production"`
	GoogleAPIKey        string        `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey        string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey     string        `env:"ANTHROPIC_API_KEY"`
	GeminiModel         string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GPTModel            string        `env:"GPT_MODEL" envDefault:"gpt-4o-mini"`
	ClaudeModel         string        `env:"CLAUDE_MODEL" envDefault:"claude-3-5-haiku-latest"`
	ClaudeMaxTokens     int           `env:"CLAUDE_MAX_TOKENS" envDefault:"8192"`
	TranscriptsDir      string        `env:"TRANSCRIPTS_DIR" envDefault:"transcripts"`
	OutputsDir          string        `env:"OUTPUTS_DIR" envDefault:"outputs"`
	TranscriptLanguages []string      `env:"TRANSCRIPT_LANGUAGES" envDefault:"en" envSeparator:","`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	SummaryWebhookURL   string        `env:"SUMMARY_WEBHOOK_URL"`
	DiscordToken        string        `env:"DISCORD_TOKEN"`
	DiscordChannelID    string        `env:"DISCORD_CHANNEL_ID"`
}

// Load reads an optional .env file from the working directory, then parses
// the process environment into a validated configuration.
func Load(dotenvFiles ...string) (*internalconfig.Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                 raw.Env,
		GoogleAPIKey:        raw.GoogleAPIKey,
		OpenAIAPIKey:        raw.OpenAIAPIKey,
		AnthropicAPIKey:     raw.AnthropicAPIKey,
		GeminiModel:         raw.GeminiModel,
		GPTModel:            raw.GPTModel,
		ClaudeModel:         raw.ClaudeModel,
		ClaudeMaxTokens:     raw.ClaudeMaxTokens,
		TranscriptsDir:      raw.TranscriptsDir,
		OutputsDir:          raw.OutputsDir,
		TranscriptLanguages: raw.TranscriptLanguages,
		HTTPTimeout:         raw.HTTPTimeout,
		DatabaseURL:         raw.DatabaseURL,
		SummaryWebhookURL:   raw.SummaryWebhookURL,
		DiscordToken:        raw.DiscordToken,
		DiscordChannelID:    raw.DiscordChannelID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Values already present in the environment take precedence over .env entries.
func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
