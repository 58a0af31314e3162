// Package ai provides HTTP-backed text-generation providers for the content
// augmenter. Provider-specific wire formats live in small adapter triples
// (build request, parse response, set headers) shared through one generic
// HTTP provider.
package ai

import (
	"net/http"
	"strings"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

type Factory struct {
	httpClient *http.Client
}

func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPTimeout},
	}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch inferProviderKind(model.Endpoint, model.Name) {
	case domain.ProviderKindAnthropic:
		return newHTTPProvider("anthropic", model, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderKindOllama:
		return newHTTPProvider("ollama", model, f.httpClient, ollamaAdapter()), nil
	default:
		// Any OpenAI-compatible chat completion endpoint.
		return newHTTPProvider("openai", model, f.httpClient, openaiAdapter()), nil
	}
}

func inferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindUnknown
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
