package config

type Model string

const (
	ModelGPT35Turbo   Model = "openai/gpt-3.5-turbo"
	ModelGPT4         Model = "openai/gpt-4"
	ModelClaude3Haiku Model = "anthropic/claude-3-haiku"
	ModelGeminiPro    Model = "google/gemini-pro"
)

// DefaultModel is used when a user profile does not name one.
const DefaultModel = ModelGPT35Turbo

func SupportedModels() []Model {
	return []Model{
		ModelGPT35Turbo,
		ModelGPT4,
		ModelClaude3Haiku,
		ModelGeminiPro,
	}
}

func IsSupportedModel(name string) bool {
	for _, m := range SupportedModels() {
		if string(m) == name {
			return true
		}
	}
	return false
}
