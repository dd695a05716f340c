package config

import (
	"sync"
)

// OpenAIConfig targets any OpenAI-compatible chat completions API. The
// defaults point at Groq.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	QuestionModel string
	FeedbackModel string
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		openAIConfig = &OpenAIConfig{
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_BASE_URL", "https://api.groq.com/openai/v1/"),
			QuestionModel: getEnv("OPENAI_QUESTION_MODEL", "llama-3.1-8b-instant"),
			FeedbackModel: getEnv("OPENAI_FEEDBACK_MODEL", "llama-3.3-70b-versatile"),
		}
	})
	return openAIConfig
}
