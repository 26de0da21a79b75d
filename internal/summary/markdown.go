package summary

import (
	"fmt"
	"strings"
	"time"
)

const generatedAtLayout = "2006-01-02 15:04:05"

func buildServiceMarkdown(videoID, model, body string, now time.Time) string {
	return fmt.Sprintf("# %s Summary for Video: %s\n\nGenerated on: %s\n\nModel: %s\n\n%s",
		model, videoID, now.Format(generatedAtLayout), model, body)
}

func buildCombinedMarkdown(videoID string, results []Result, now time.Time) string {
	lines := []string{
		fmt.Sprintf("# Combined Video Summary: %s", videoID),
		"",
		fmt.Sprintf("Generated on: %s", now.Format(generatedAtLayout)),
		"",
		"## Model Information",
	}
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("- %s Model: %s", r.Service, r.Model))
	}
	lines = append(lines, "", "## Summaries from Different Models")
	for _, r := range results {
		lines = append(lines, "", fmt.Sprintf("### %s Summary", r.Heading), r.Section())
	}
	return strings.Join(lines, "\n") + "\n"
}

func errorPlaceholder(model string, err error) string {
	return fmt.Sprintf("Error generating %s summary: %v", model, err)
}
