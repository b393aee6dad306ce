package advice

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// LangChainProvider generates advice through any langchaingo model, such as
// the Gemini client built by the service binary.
type LangChainProvider struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

func NewLangChainProvider(model llms.Model) *LangChainProvider {
	return &LangChainProvider{model: model, temperature: 0.3, maxTokens: 400}
}

func (p *LangChainProvider) Generate(ctx context.Context, req Request) (string, error) {
	prompt := systemPrompt + "\n\n" + Prompt(req)
	return llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
}
