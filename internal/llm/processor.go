package llm

import (
	"context"
	"fmt"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// Processor turns a cleaned caption into a validated Recipe. One processor
// serves all models of its provider; the model is chosen per call.
// Implementations must return an error instead of panicking, whatever the
// backend sends back.
type Processor interface {
	Name() string
	Process(ctx context.Context, caption, postURL, model string) (*models.Recipe, float64, error)
	Close()
}

// NewProcessor maps the configured provider to its backend. The provider
// set is closed; a config value outside it is rejected here even though
// the validator catches it first.
func NewProcessor(conf *structures.Config, logger providers.Logger) (Processor, error) {
	switch conf.LLM.Provider {
	case "gemini":
		return NewGeminiProcessor(conf, logger)
	case "ollama":
		return NewOllamaProcessor(conf, logger), nil
	case "lmstudio":
		return NewLMStudioProcessor(conf, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", conf.LLM.Provider)
	}
}
