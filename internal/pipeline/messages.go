package pipeline

import (
	"fmt"
	"strings"
)

const (
	messageSummaryTitleFormat = ":page_facing_up: **Summary for https://youtu.be/%s**"
	messageFailedLineFormat   = "-# %s (%s) failed: %s"
	messageCachedLineFormat   = "-# %s (%s) reused a cached summary"
	maxErrorLength            = 200
)

func discordMessage(report *Report) string {
	lines := []string{fmt.Sprintf(messageSummaryTitleFormat, report.VideoID)}
	for _, res := range report.Output.Results {
		switch {
		case res.Err != nil:
			lines = append(lines, fmt.Sprintf(messageFailedLineFormat, res.Service, res.Model, truncate(res.Err.Error(), maxErrorLength)))
		case res.Cached:
			lines = append(lines, fmt.Sprintf(messageCachedLineFormat, res.Service, res.Model))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
