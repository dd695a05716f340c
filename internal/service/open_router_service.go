package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/metrics"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to the OpenRouter chat completions API.
type OpenRouterService struct {
	client  *resty.Client
	model   string
	metrics *metrics.Metrics
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, timeout time.Duration, m *metrics.Metrics) *OpenRouterService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &OpenRouterService{
		client:  client,
		model:   cfg.Model,
		metrics: m,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.chat(ctx, map[string]any{
		"model": s.model,
		"messages": []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
}

func (s *OpenRouterService) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	system, err := schemaInstruction(req.System, req.Schema)
	if err != nil {
		return err
	}
	text, err := s.chat(ctx, map[string]any{
		"model": s.model,
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: req.Prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
	})
	if err != nil {
		return err
	}
	return decodeObject(text, out)
}

func (s *OpenRouterService) chat(ctx context.Context, payload map[string]any) (string, error) {
	start := time.Now()
	text, err := s.doChat(ctx, payload)
	s.metrics.LLMRequest(config.ProviderOpenRouter, time.Since(start).Seconds(), err)
	return text, err
}

func (s *OpenRouterService) doChat(ctx context.Context, payload map[string]any) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = body
		}
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), msg)
	}

	log.Debugf("openrouter response: %s", body)

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return content.String(), nil
}
