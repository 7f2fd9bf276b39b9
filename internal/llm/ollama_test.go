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

	"instarecipe/internal/models"
	"instarecipe/internal/structures"
	"instarecipe/internal/testutil"
)

const recipePayload = `{"title": "Pfannkuchen", "ingredients": [{"group_title": "Zutaten", "items": [{"name": "Mehl", "quantity": "250g"}]}], "steps": ["Alles verrühren."]}`

func newOllamaTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OllamaProcessor) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		LLM: structures.LLMConfig{
			OllamaHost: srv.URL,
			Timeout:    5 * time.Second,
			Strict:     true,
		},
	}
	return srv, NewOllamaProcessor(conf, &testutil.MockLogger{})
}

func TestOllamaProcessor_Success(t *testing.T) {
	var gotReq ollamaChatRequest
	_, p := newOllamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := ollamaChatResponse{Message: chatMessage{Role: "assistant", Content: recipePayload}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	recipe, secs, err := p.Process(context.Background(), "Zutaten: Mehl", "https://www.instagram.com/p/abc/", "llama3.1:8b")
	require.NoError(t, err)
	assert.Equal(t, "Pfannkuchen", recipe.Title)
	assert.Equal(t, "https://www.instagram.com/p/abc/", recipe.SourceURL)
	assert.Greater(t, secs, 0.0)

	assert.Equal(t, "llama3.1:8b", gotReq.Model)
	assert.Equal(t, "json", gotReq.Format)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Zutaten: Mehl")
}

func TestOllamaProcessor_ServerError(t *testing.T) {
	_, p := newOllamaTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, _, err := p.Process(context.Background(), "caption", "url", "missing-model")
	assert.Error(t, err)
}

func TestOllamaProcessor_InvalidRecipeJSON(t *testing.T) {
	_, p := newOllamaTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		resp := ollamaChatResponse{Message: chatMessage{Content: `{"not": "a recipe"}`}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, _, err := p.Process(context.Background(), "caption", "url", "m")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestOllamaProcessor_ErrorField(t *testing.T) {
	_, p := newOllamaTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Error: "out of memory"})
	})

	_, _, err := p.Process(context.Background(), "caption", "url", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestOllamaProcessor_Unreachable(t *testing.T) {
	conf := &structures.Config{
		LLM: structures.LLMConfig{
			OllamaHost: "http://127.0.0.1:1",
			Timeout:    time.Second,
		},
	}
	p := NewOllamaProcessor(conf, &testutil.MockLogger{})

	_, _, err := p.Process(context.Background(), "caption", "url", "m")
	assert.Error(t, err)
}
