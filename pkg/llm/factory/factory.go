package factory

import (
	"fmt"

	"gastroassist-be/pkg/llm"
	"gastroassist-be/pkg/llm/groq"
	"gastroassist-be/pkg/llm/openai"
)

// NewLLMProvider selects the backing chat-completion service once at
// construction time. Provider selection never happens per call.
func NewLLMProvider(providerType, apiKey, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return openai.NewOpenAIProvider(apiKey, "", modelName), nil
	case "groq":
		if apiKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is not set")
		}
		return groq.NewGroqProvider(apiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (use \"openai\" or \"groq\")", providerType)
	}
}
