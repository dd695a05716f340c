package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/metrics"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"
)

// OpenAIService speaks the OpenAI chat completions protocol. Pointed at Groq by default.
type OpenAIService struct {
	client  *openai.Client
	model   string
	metrics *metrics.Metrics
}

func NewOpenAIService(cfg *config.OpenAIConfig, model string, timeout time.Duration, m *metrics.Metrics) *OpenAIService {
	options := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if cfg.APIKey == "" {
		log.Info("OPENAI_API_KEY environment variable is not set, will try unauthenticated access")
	} else {
		options = append(options, option.WithAPIKey(cfg.APIKey))
	}

	client := openai.NewClient(options...)
	return &OpenAIService{client: &client, model: model, metrics: m}
}

func (s *OpenAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.chat(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}

func (s *OpenAIService) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	system, err := schemaInstruction(req.System, req.Schema)
	if err != nil {
		return err
	}
	text, err := s.chat(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(req.Prompt),
	})
	if err != nil {
		return err
	}
	return decodeObject(text, out)
}

func (s *OpenAIService) chat(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	start := time.Now()
	text, err := s.doChat(ctx, messages)
	s.metrics.LLMRequest(config.ProviderOpenAI, time.Since(start).Seconds(), err)
	return text, err
}

func (s *OpenAIService) doChat(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    s.model,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("client didn't return any content choices")
	}

	return resp.Choices[0].Message.Content, nil
}
