package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Env                 string
	GoogleAPIKey        string
	OpenAIAPIKey        string
	AnthropicAPIKey     string
	GeminiModel         string
	GPTModel            string
	ClaudeModel         string
	ClaudeMaxTokens     int
	TranscriptsDir      string
	OutputsDir          string
	TranscriptLanguages []string
	HTTPTimeout         time.Duration
	DatabaseURL         string
	SummaryWebhookURL   string
	DiscordToken        string
	DiscordChannelID    string
}

func (c *Config) Validate() error {
	var missing []string
	for _, req := range c.requiredFieldChecks() {
		if strings.TrimSpace(req.value) == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	for _, m := range []requiredEnvField{
		{name: "GEMINI_MODEL", value: c.GeminiModel},
		{name: "GPT_MODEL", value: c.GPTModel},
		{name: "CLAUDE_MODEL", value: c.ClaudeModel},
		{name: "TRANSCRIPTS_DIR", value: c.TranscriptsDir},
		{name: "OUTPUTS_DIR", value: c.OutputsDir},
	} {
		if strings.TrimSpace(m.value) == "" {
			return fmt.Errorf("%s must not be empty", m.name)
		}
	}
	if c.ClaudeMaxTokens <= 0 {
		return fmt.Errorf("CLAUDE_MAX_TOKENS must be positive, got %d", c.ClaudeMaxTokens)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	if c.DiscordToken != "" && c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "GOOGLE_API_KEY", value: c.GoogleAPIKey},
		{name: "OPENAI_API_KEY", value: c.OpenAIAPIKey},
		{name: "ANTHROPIC_API_KEY", value: c.AnthropicAPIKey},
	}
}

// EnsureDirs creates the transcript and output directories when absent.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.TranscriptsDir, c.OutputsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
