package transcript

import (
	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Provider, error) {
		cfg := do.MustInvoke[*config.Config](i)
		fetcher := do.MustInvoke[Fetcher](i)
		return NewProvider(cfg.TranscriptsDir, fetcher), nil
	})
}
