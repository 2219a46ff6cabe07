package config

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle: "gemini-2.5-pro",
	ProviderOpenAI: "gpt-4o",
	ProviderOllama: "llama3",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGoogle,
		Model:          defaultModels[ProviderGoogle],
		Port:           8090,
		DataDir:        ".appgen",
		TimeoutSeconds: 120,
	}
}

// DefaultModel returns the default model for the given provider, falling back
// to the Google default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if model, ok := defaultModels[provider]; ok {
		return model
	}
	return defaultModels[ProviderGoogle]
}
