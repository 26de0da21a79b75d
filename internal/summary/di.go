package summary

import (
	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/llm"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Generator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		services := do.MustInvoke[llm.Services](i)
		return NewGenerator(cfg.OutputsDir, services), nil
	})
}
