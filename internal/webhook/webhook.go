package webhook

import "context"

const SummaryWebhookSchemaVersion = "2026-10-15"

type SummaryWebhookArtifact struct {
	Service string `json:"service"`
	Model   string `json:"model"`
	Path    string `json:"path,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type SummaryWebhookPayload struct {
	SchemaVersion    string                   `json:"schema_version"`
	VideoID          string                   `json:"video_id"`
	Suffix           string                   `json:"suffix"`
	GeneratedAt      string                   `json:"generated_at"`
	Artifacts        []SummaryWebhookArtifact `json:"artifacts"`
	CombinedPath     string                   `json:"combined_path"`
	CombinedMarkdown string                   `json:"combined_markdown"`
}

type Sender interface {
	SendSummary(ctx context.Context, payload SummaryWebhookPayload) error
}
