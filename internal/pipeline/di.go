package pipeline

import (
	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/discord"
	"github.com/foxseedlab/ytsummary/internal/repository"
	"github.com/foxseedlab/ytsummary/internal/summary"
	"github.com/foxseedlab/ytsummary/internal/transcript"
	"github.com/foxseedlab/ytsummary/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		transcripts := do.MustInvoke[*transcript.Provider](i)
		summaries := do.MustInvoke[*summary.Generator](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		dc := do.MustInvoke[discord.Client](i)
		return NewRunner(cfg, transcripts, summaries, repo, wh, dc), nil
	})
}
