package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// OllamaProcessor talks to a local Ollama server over its chat API.
// Temperature is pinned to zero so repeated runs extract deterministically.
type OllamaProcessor struct {
	host   string
	client *http.Client
	logger providers.Logger
	strict bool
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Options  map[string]any `json:"options,omitempty"`
	Format   string         `json:"format"`
	Stream   bool           `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func NewOllamaProcessor(conf *structures.Config, logger providers.Logger) *OllamaProcessor {
	return &OllamaProcessor{
		host:   strings.TrimRight(conf.LLM.OllamaHost, "/"),
		client: &http.Client{Timeout: conf.LLM.Timeout},
		logger: logger,
		strict: conf.LLM.Strict,
	}
}

func (o *OllamaProcessor) Name() string { return "ollama" }

func (o *OllamaProcessor) Process(ctx context.Context, caption, postURL, model string) (*models.Recipe, float64, error) {
	start := time.Now()

	body, err := json.Marshal(ollamaChatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserPrompt(caption)},
		},
		Options: map[string]any{"temperature": 0.0},
		Format:  "json",
		Stream:  false,
	})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("ollama %s: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("ollama %s: read response: %w", model, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("ollama %s: status %d: %s", model, resp.StatusCode, truncate(raw, 200))
	}

	var chat ollamaChatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, 0, fmt.Errorf("ollama %s: decode response: %w", model, err)
	}
	if chat.Error != "" {
		return nil, 0, fmt.Errorf("ollama %s: %s", model, chat.Error)
	}

	recipe, err := models.DecodeRecipe([]byte(chat.Message.Content), o.strict)
	if err != nil {
		return nil, 0, fmt.Errorf("ollama %s: %w", model, err)
	}
	recipe.SourceURL = postURL

	secs := time.Since(start).Seconds()
	o.logger.Infof(providers.TypeLLM, "Processed %s with %s in %.2fs: %q", postURL, model, secs, recipe.Title)
	return recipe, secs, nil
}

func (o *OllamaProcessor) Close() {
	o.client.CloseIdleConnections()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
