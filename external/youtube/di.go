package youtube

import (
	"net/http"

	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcript.Fetcher, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCaptionFetcher(Config{
			HTTPClient: &http.Client{Timeout: c.HTTPTimeout},
			Languages:  c.TranscriptLanguages,
		}), nil
	})
}
