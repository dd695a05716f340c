package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/metrics"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client            *genai.Client
	Model             string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	metrics           *metrics.Metrics
	consecutiveErrors atomic.Int32
	circuitBreakerMax int32
	// While open, one trial call is let through per cooldown window.
	circuitCooldown time.Duration
	circuitOpenedAt atomic.Int64
	now             func() time.Time
}

type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at another endpoint, mostly for tests.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = url
	}
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, timeout time.Duration, m *metrics.Metrics, opts ...GeminiOption) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientConfig)
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.Model,
		MaxRetries:        cfg.MaxRetries,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    timeout,
		metrics:           m,
		circuitBreakerMax: 5,
		circuitCooldown:   30 * time.Second,
		now:               time.Now,
	}, nil
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := s.GenerateContent(ctx, s.Model, prompt, nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func (s *GeminiService) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	result, err := s.GenerateContent(ctx, s.Model, req.Prompt, genConfig)
	if err != nil {
		return err
	}
	return decodeObject(result.Text(), out)
}

func (s *GeminiService) GenerateContent(ctx context.Context, model string, prompt string, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	result, err := s.generateContent(ctx, model, prompt, genConfig)
	s.metrics.LLMRequest(config.ProviderGemini, time.Since(start).Seconds(), err)
	return result, err
}

func (s *GeminiService) generateContent(ctx context.Context, model string, prompt string, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if err := s.allowRequest(); err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	if genConfig == nil {
		genConfig = &genai.GenerateContentConfig{}
	}
	if genConfig.Temperature == nil {
		genConfig.Temperature = genai.Ptr(float32(0.1))
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Infof("Retry attempt %d/%d for GenerateContent after %v", attempt, s.MaxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.recordFailure(ctx)
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.GenerateContent(
			timeoutCtx,
			model,
			genai.Text(prompt),
			genConfig,
		)

		if err == nil {
			s.recordSuccess()
			if err := s.validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}

			return result, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			log.WithError(err).Warn("Non-retryable gemini error")
			s.recordFailure(ctx)
			return nil, fmt.Errorf("generate content failed: %w", err)
		}

		log.WithError(err).Warnf("Retryable gemini error on attempt %d", attempt+1)
	}

	s.recordFailure(ctx)
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	// +/-12.5% jitter
	jitter := time.Duration(float64(delay) * 0.25)
	if jitter > 0 {
		delay = delay - jitter/2 + time.Duration(rand.Int64N(int64(jitter)))
	}

	return delay
}

func (s *GeminiService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// allowRequest rejects calls while the breaker is open. After the cooldown
// exactly one caller wins the CAS and is let through as a trial.
func (s *GeminiService) allowRequest() error {
	n := s.consecutiveErrors.Load()
	if n < s.circuitBreakerMax {
		return nil
	}
	openedAt := s.circuitOpenedAt.Load()
	now := s.clock()
	if s.circuitCooldown > 0 && now.Sub(time.Unix(0, openedAt)) >= s.circuitCooldown &&
		s.circuitOpenedAt.CompareAndSwap(openedAt, now.UnixNano()) {
		log.Info("Circuit breaker half-open, sending trial request")
		return nil
	}
	return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", n)
}

func (s *GeminiService) recordSuccess() {
	s.consecutiveErrors.Store(0)
	s.circuitOpenedAt.Store(0)
}

// recordFailure counts an upstream failure. Calls abandoned by the caller
// do not say anything about upstream health and are not counted.
func (s *GeminiService) recordFailure(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if n := s.consecutiveErrors.Add(1); n >= s.circuitBreakerMax {
		s.circuitOpenedAt.Store(s.clock().UnixNano())
	}
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if code, ok := apiErrorCode(err); ok {
		switch code {
		case 429: // rate limited
			return true
		case 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

// apiErrorCode reads the HTTP status off a genai.APIError. The client returns
// it by value; the pointer form is accepted too.
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	log.Info("Circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	n := s.consecutiveErrors.Load()
	return int(n), n >= s.circuitBreakerMax
}
