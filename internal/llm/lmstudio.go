package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// thinkPattern removes reasoning blocks that thinking models prepend even
// when asked for a JSON object.
var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// LMStudioProcessor talks to LM Studio's OpenAI-compatible endpoint.
type LMStudioProcessor struct {
	host   string
	client *http.Client
	logger providers.Logger
	strict bool
}

type openAIChatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewLMStudioProcessor(conf *structures.Config, logger providers.Logger) *LMStudioProcessor {
	return &LMStudioProcessor{
		host:   strings.TrimRight(conf.LLM.LMStudioHost, "/"),
		client: &http.Client{Timeout: conf.LLM.Timeout},
		logger: logger,
		strict: conf.LLM.Strict,
	}
}

func (l *LMStudioProcessor) Name() string { return "lmstudio" }

func (l *LMStudioProcessor) Process(ctx context.Context, caption, postURL, model string) (*models.Recipe, float64, error) {
	start := time.Now()

	body, err := json.Marshal(openAIChatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserPrompt(caption)},
		},
		Temperature:    0,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.host+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("lmstudio %s: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("lmstudio %s: read response: %w", model, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("lmstudio %s: status %d: %s", model, resp.StatusCode, truncate(raw, 200))
	}

	var chat openAIChatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, 0, fmt.Errorf("lmstudio %s: decode response: %w", model, err)
	}
	if chat.Error != nil {
		return nil, 0, fmt.Errorf("lmstudio %s: %s", model, chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, 0, fmt.Errorf("lmstudio %s: empty response", model)
	}

	content := strings.TrimSpace(thinkPattern.ReplaceAllString(chat.Choices[0].Message.Content, ""))
	recipe, err := models.DecodeRecipe([]byte(content), l.strict)
	if err != nil {
		return nil, 0, fmt.Errorf("lmstudio %s: %w", model, err)
	}
	recipe.SourceURL = postURL

	secs := time.Since(start).Seconds()
	l.logger.Infof(providers.TypeLLM, "Processed %s with %s in %.2fs: %q", postURL, model, secs, recipe.Title)
	return recipe, secs, nil
}

func (l *LMStudioProcessor) Close() {
	l.client.CloseIdleConnections()
}
