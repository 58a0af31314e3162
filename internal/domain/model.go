// Package domain defines core business entities and value objects for ecoscan.
//
// This file contains generation model and provider definitions used by the
// content augmenter.
package domain

// ModelDefinition describes a text-generation endpoint declared in the
// config file, with its authentication and generation parameters.
type ModelDefinition struct {
	Name        string  `yaml:"name"`
	Endpoint    string  `yaml:"endpoint"`
	AuthEnvVar  string  `yaml:"auth_env_var"`
	OrgEnvVar   string  `yaml:"org_env_var"`
	ModelID     string  `yaml:"model_id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ProviderKind identifies which wire format a model endpoint speaks.
type ProviderKind string

const (
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindOllama    ProviderKind = "ollama"
	ProviderKindUnknown   ProviderKind = "unknown"
)
