package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	LLM  LLMConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OTLPEndpoint       string
}

type APIKeys struct {
	Tavily string
}

type LLMConfig struct {
	Service     string // "openai" or "groq"
	OpenAIKey   string
	OpenAIModel string
	GroqKey     string
	GroqModel   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Keys: APIKeys{
			Tavily: getEnv("TAVILY_API_KEY", ""),
		},
		LLM: LLMConfig{
			Service:     strings.ToLower(getEnv("LLM_SERVICE", "openai")),
			OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIModel: getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			GroqKey:     getEnv("GROQ_API_KEY", ""),
			GroqModel:   getEnv("GROQ_MODEL", "llama3-70b-8192"),
		},
	}
}

// APIKey returns the credential for the configured LLM service.
func (c *LLMConfig) APIKey() string {
	if c.Service == "groq" {
		return c.GroqKey
	}
	return c.OpenAIKey
}

// Model returns the model name for the configured LLM service.
func (c *LLMConfig) Model() string {
	if c.Service == "groq" {
		return c.GroqModel
	}
	return c.OpenAIModel
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
