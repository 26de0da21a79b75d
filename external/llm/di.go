package llm

import (
	"github.com/foxseedlab/ytsummary/internal/config"
	"github.com/foxseedlab/ytsummary/internal/llm"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (llm.Services, error) {
		c := do.MustInvoke[*config.Config](i)
		return llm.Services{
			{Name: "Gemini", Model: c.GeminiModel, Client: NewGeminiClient(c.GoogleAPIKey, c.GeminiModel)},
			{Name: "GPT", Heading: "GPT-4", Model: c.GPTModel, Client: NewOpenAIClient(c.OpenAIAPIKey, c.GPTModel)},
			{Name: "Claude", Model: c.ClaudeModel, Client: NewAnthropicClient(c.AnthropicAPIKey, c.ClaudeModel, c.ClaudeMaxTokens)},
		}, nil
	})
}
