package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

func TestGenerateChatCompletion(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  about one phone charge  "}}]}`))
	}))
	defer server.Close()

	model := domain.ModelDefinition{
		Name:      "local",
		Endpoint:  server.URL,
		ModelID:   "test-model",
		MaxTokens: 64,
	}
	provider := newHTTPProvider("ollama", model, server.Client(), ollamaAdapter())

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "compare"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text != "about one phone charge" {
		t.Fatalf("Generate() text = %q, want trimmed content", resp.Text)
	}
	if captured["model"] != "test-model" {
		t.Fatalf("request model = %v", captured["model"])
	}
	if captured["max_tokens"] != float64(64) {
		t.Fatalf("request max_tokens = %v, want 64", captured["max_tokens"])
	}
}

func TestGenerateAnthropicFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" {
			t.Error("missing x-api-key header")
		}
		w.Write([]byte(`{"content":[{"text":"roughly a lightbulb hour"}]}`))
	}))
	defer server.Close()

	t.Setenv("TEST_ANTHROPIC_KEY", "secret")
	model := domain.ModelDefinition{
		Name:       "claude",
		Endpoint:   server.URL,
		AuthEnvVar: "TEST_ANTHROPIC_KEY",
		ModelID:    "claude-3-5-haiku-20241022",
	}
	provider := newHTTPProvider("anthropic", model, server.Client(), anthropicAdapter())

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "compare"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text != "roughly a lightbulb hour" {
		t.Fatalf("Generate() text = %q", resp.Text)
	}
}

func TestGenerateSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local", Endpoint: server.URL, ModelID: "m"}
	provider := newHTTPProvider("ollama", model, server.Client(), ollamaAdapter())

	_, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestInferProviderKind(t *testing.T) {
	tests := []struct {
		endpoint string
		name     string
		want     domain.ProviderKind
	}{
		{endpoint: "https://api.anthropic.com/v1/messages", want: domain.ProviderKindAnthropic},
		{endpoint: "https://api.openai.com/v1/chat/completions", want: domain.ProviderKindOpenAI},
		{endpoint: "http://localhost:11434/v1/chat/completions", want: domain.ProviderKindOllama},
		{endpoint: "https://example.com/v1", name: "ollama-remote", want: domain.ProviderKindOllama},
		{endpoint: "https://example.com/v1", want: domain.ProviderKindUnknown},
	}

	for _, tt := range tests {
		if got := inferProviderKind(tt.endpoint, tt.name); got != tt.want {
			t.Errorf("inferProviderKind(%q, %q) = %s, want %s", tt.endpoint, tt.name, got, tt.want)
		}
	}
}
