package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenRouterTestServer(t *testing.T, status int, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newOpenRouterForTest(url string) *OpenRouterService {
	return NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "openai/gpt-4o-mini",
	}, 5*time.Second, metrics.New(prometheus.NewRegistry()))
}

func TestOpenRouterGenerateText(t *testing.T) {
	var seen map[string]any
	srv := newOpenRouterTestServer(t, http.StatusOK, `["Q1","Q2"]`, &seen)
	defer srv.Close()

	text, err := newOpenRouterForTest(srv.URL).GenerateText(context.Background(), "give me questions")
	require.NoError(t, err)
	assert.Equal(t, `["Q1","Q2"]`, text)
	assert.Equal(t, "openai/gpt-4o-mini", seen["model"])
	messages := seen["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "give me questions", messages[0].(map[string]any)["content"])
}

func TestOpenRouterGenerateObject(t *testing.T) {
	var seen map[string]any
	srv := newOpenRouterTestServer(t, http.StatusOK, `{"score": 80, "note": "good"}`, &seen)
	defer srv.Close()

	var out scored
	err := newOpenRouterForTest(srv.URL).GenerateObject(context.Background(), ObjectRequest{
		Prompt: "score this",
		System: "raw JSON only",
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, scored{Score: 80, Note: "good"}, out)

	messages := seen["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, map[string]any{"type": "json_object"}, seen["response_format"])
}

func TestOpenRouterGenerateObjectRejectsNonConformingOutput(t *testing.T) {
	srv := newOpenRouterTestServer(t, http.StatusOK, `{"score": 800}`, nil)
	defer srv.Close()

	var out scored
	err := newOpenRouterForTest(srv.URL).GenerateObject(context.Background(), ObjectRequest{Prompt: "score this"}, &out)
	assert.Error(t, err)
}

func TestOpenRouterErrorStatus(t *testing.T) {
	srv := newOpenRouterTestServer(t, http.StatusTooManyRequests, "", nil)
	defer srv.Close()

	_, err := newOpenRouterForTest(srv.URL).GenerateText(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenRouterEmptyContent(t *testing.T) {
	srv := newOpenRouterTestServer(t, http.StatusOK, "", nil)
	defer srv.Close()

	_, err := newOpenRouterForTest(srv.URL).GenerateText(context.Background(), "hi")
	assert.EqualError(t, err, "no response from LLM")
}
