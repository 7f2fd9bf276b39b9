package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instarecipe/internal/structures"
	"instarecipe/internal/testutil"
)

func newLMStudioTestServer(t *testing.T, content string) *LMStudioProcessor {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		assert.Zero(t, req.Temperature)

		resp := openAIChatResponse{}
		resp.Choices = []struct {
			Message chatMessage `json:"message"`
		}{{Message: chatMessage{Role: "assistant", Content: content}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		LLM: structures.LLMConfig{
			LMStudioHost: srv.URL,
			Timeout:      5 * time.Second,
			Strict:       true,
		},
	}
	return NewLMStudioProcessor(conf, &testutil.MockLogger{})
}

func TestLMStudioProcessor_Success(t *testing.T) {
	p := newLMStudioTestServer(t, recipePayload)

	recipe, secs, err := p.Process(context.Background(), "Zutaten: Mehl", "https://www.instagram.com/p/abc/", "google/gemma-3-12b")
	require.NoError(t, err)
	assert.Equal(t, "Pfannkuchen", recipe.Title)
	assert.Equal(t, "https://www.instagram.com/p/abc/", recipe.SourceURL)
	assert.Greater(t, secs, 0.0)
}

func TestLMStudioProcessor_StripsThinkBlock(t *testing.T) {
	p := newLMStudioTestServer(t, "<think>\nLet me parse the ingredients...\n</think>\n"+recipePayload)

	recipe, _, err := p.Process(context.Background(), "caption", "url", "qwen/qwen3-4b-thinking-2507")
	require.NoError(t, err)
	assert.Equal(t, "Pfannkuchen", recipe.Title)
}

func TestLMStudioProcessor_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		LLM: structures.LLMConfig{LMStudioHost: srv.URL, Timeout: time.Second},
	}
	p := NewLMStudioProcessor(conf, &testutil.MockLogger{})

	_, _, err := p.Process(context.Background(), "caption", "url", "m")
	assert.Error(t, err)
}

func TestLMStudioProcessor_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "model not loaded"}}`))
	}))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		LLM: structures.LLMConfig{LMStudioHost: srv.URL, Timeout: time.Second},
	}
	p := NewLMStudioProcessor(conf, &testutil.MockLogger{})

	_, _, err := p.Process(context.Background(), "caption", "url", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}
