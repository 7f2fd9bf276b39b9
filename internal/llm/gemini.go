package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// GeminiProcessor calls the Gemini API with a JSON response MIME type.
type GeminiProcessor struct {
	client  *genai.Client
	logger  providers.Logger
	timeout time.Duration
	strict  bool
}

func NewGeminiProcessor(conf *structures.Config, logger providers.Logger) (*GeminiProcessor, error) {
	if conf.LLM.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  conf.LLM.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProcessor{
		client:  client,
		logger:  logger,
		timeout: conf.LLM.Timeout,
		strict:  conf.LLM.Strict,
	}, nil
}

func (g *GeminiProcessor) Name() string { return "gemini" }

func (g *GeminiProcessor) Process(ctx context.Context, caption, postURL, model string) (recipe *models.Recipe, secs float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gemini panic for %s: %v", postURL, r)
		}
	}()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model = strings.TrimPrefix(model, "models/")

	resp, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: UserPrompt(caption)}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemPrompt}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, 0, fmt.Errorf("gemini %s: %w", model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, 0, fmt.Errorf("gemini %s: empty response", model)
	}

	recipe, err = models.DecodeRecipe([]byte(resp.Candidates[0].Content.Parts[0].Text), g.strict)
	if err != nil {
		return nil, 0, fmt.Errorf("gemini %s: %w", model, err)
	}
	recipe.SourceURL = postURL

	secs = time.Since(start).Seconds()
	g.logger.Infof(providers.TypeLLM, "Processed %s with %s in %.2fs: %q", postURL, model, secs, recipe.Title)
	return recipe, secs, nil
}

func (g *GeminiProcessor) Close() {}
