package config

import (
	"sync"
)

type GeminiConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxRetries: getEnvAsInt("GEMINI_MAX_RETRIES", 0),
		}
	})
	return geminiConfig
}
