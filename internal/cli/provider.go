package cli

// Synthesis provider names accepted by --provider.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Environment variable names read by commands.
const (
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)
