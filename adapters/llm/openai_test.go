package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/verbaly/cefr-coach/domain"
)

func newTestClient(upstream *httptest.Server) *OpenAIClient {
	return &OpenAIClient{
		BaseURL:    upstream.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		HTTPClient: upstream.Client(),
	}
}

func TestCompleteSendsChatCompletionsRequest(t *testing.T) {
	var got chatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test key", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Nice to meet you!"}},
			},
		})
	}))
	defer upstream.Close()

	client := newTestClient(upstream)
	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.SystemRole, Content: "you are an examiner"},
		{Role: domain.UserRole, Content: "hello there"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "Nice to meet you!" {
		t.Errorf("reply = %q, want first choice content", reply)
	}

	if got.Model != "test-model" {
		t.Errorf("model = %q, want test-model", got.Model)
	}
	if got.MaxTokens != 800 {
		t.Errorf("max_tokens = %d, want 800", got.MaxTokens)
	}
	if got.Temperature != 0.6 {
		t.Errorf("temperature = %v, want 0.6", got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages = %+v, want system turn then user turn", got.Messages)
	}
}

func TestCompleteMapsNonSuccessToUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limit exceeded"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream)
	_, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.UserRole, Content: "hello"},
	})

	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *domain.UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", upstreamErr.StatusCode)
	}
	if upstreamErr.Body != "rate limit exceeded" {
		t.Errorf("body = %q, want the raw upstream body", upstreamErr.Body)
	}
}

func TestCompleteEmptyChoicesYieldsEmptyReply(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream)
	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.UserRole, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty (usecase substitutes the fallback)", reply)
	}
}
