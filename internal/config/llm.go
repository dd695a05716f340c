package config

import (
	"sync"
	"time"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

type LLMConfig struct {
	QuestionProvider string
	FeedbackProvider string
	RequestTimeout   time.Duration
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			QuestionProvider: getEnv("QUESTION_PROVIDER", ProviderOpenAI),
			FeedbackProvider: getEnv("FEEDBACK_PROVIDER", ProviderOpenAI),
			RequestTimeout:   getEnvAsDuration("LLM_REQUEST_TIMEOUT", 90*time.Second),
		}
	})
	return llmConfig
}
