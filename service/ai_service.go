package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tds-assistant/domain"
	"tds-assistant/repository"
)

const (
	DefaultAIURL       = "https://api.openai.com/v1/chat/completions"
	DefaultAIModel     = "gpt-4o-mini"
	DefaultAITimeout   = 30 * time.Second
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500

	maxErrorBody = 512
)

type AIConfig struct {
	APIKey      string
	URL         string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AIService answers through a hosted chat-completion endpoint and falls back to
// the keyword table on any failure.
type AIService struct {
	cfg        AIConfig
	enabled    bool
	variant    Variant
	httpClient *http.Client
	fallback   Responder
	cache      repository.CacheRepository
	inflight   singleflight.Group
	logger     *zap.Logger
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewAIService builds the remote responder. cache may be nil.
func NewAIService(
	cfg AIConfig,
	variant Variant,
	fallback Responder,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *AIService {
	if cfg.URL == "" {
		cfg.URL = DefaultAIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAITimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	return &AIService{
		cfg:     cfg,
		enabled: cfg.APIKey != "",
		variant: variant,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		fallback: fallback,
		cache:    cache,
		logger:   logger,
	}
}

func (s *AIService) Enabled() bool { return s.enabled }

// Respond answers a chat message. Errors are logged and replaced by the local answer.
func (s *AIService) Respond(ctx context.Context, text string) string {
	if !s.enabled {
		return s.fallback.Respond(ctx, text)
	}

	key := cacheKey(s.variant, s.cfg.Model, "chat", text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached
		}
	}

	reply, err := s.ask(ctx, key, []Message{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: text},
	})
	if err != nil {
		s.logger.Warn("remote chat failed, using local responder", zap.Error(err))
		return s.fallback.Respond(ctx, text)
	}
	return reply
}

// AnalyzeWater explains a water reading in plain language.
func (s *AIService) AnalyzeWater(ctx context.Context, result domain.WaterResult) string {
	if !s.enabled {
		return fallbackWaterAnalysis(result)
	}

	prompt := fmt.Sprintf(`Analyze this water sample and give practical advice.

READING:
- TDS: %.0f ppm
- Conductivity: %.1f µS/cm (%.1f µS/cm at 25°C)
- Temperature: %.1f °C
- Conversion factor: %.2f
- Quality rating: %s (%s)
%s
Explain in 3-4 sentences whether the water is suitable for drinking, what the level
means and which treatment, if any, is recommended.`,
		result.TDS, result.Input.Primary, result.CompensatedConductivity,
		result.Temperature, result.Factor,
		result.Quality.Label, result.Quality.Description,
		advancedParams(result))

	key := cacheKey(s.variant, s.cfg.Model, "water", prompt)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached
		}
	}

	analysis, err := s.ask(ctx, key, []Message{
		{Role: "system", Content: waterSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("remote water analysis failed, using local analysis", zap.Error(err))
		return fallbackWaterAnalysis(result)
	}
	return analysis
}

// ask makes one remote call per key at a time; concurrent callers with the
// same key share the result. The shared call outlives the caller that started
// it and is bounded by the client timeout.
func (s *AIService) ask(ctx context.Context, key string, messages []Message) (string, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		reply, err := s.callLLM(shared, messages)
		if err != nil {
			return "", err
		}
		s.remember(shared, key, reply)
		return reply, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *AIService) remember(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to cache remote reply", zap.Error(err))
	}
}

func (s *AIService) callLLM(ctx context.Context, messages []Message) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		Messages:    messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty message content")
	}
	return content, nil
}

func (s *AIService) systemPrompt() string {
	if s.variant == VariantWaterQuality {
		return waterSystemPrompt
	}
	return incomeTaxSystemPrompt
}

const incomeTaxSystemPrompt = "You are an expert Indian tax assistant. You explain TDS (Tax Deducted at Source), the new regime income tax slabs, the 4% health and education cess, and deductions such as 80C, 80D, 80CCD(1B) and HRA. Keep answers short, accurate and practical, and use ₹ amounts."

const waterSystemPrompt = "You are a water quality expert. You explain TDS (Total Dissolved Solids) readings, electrical conductivity, temperature compensation and WHO drinking water guidance. Keep answers short, accurate and practical."

func cacheKey(v Variant, model, kind, text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	h := xxhash.New()
	_, _ = h.WriteString(string(v))
	_, _ = h.WriteString("\x00" + model + "\x00" + kind + "\x00")
	_, _ = h.WriteString(normalized)
	return kind + ":" + strconv.FormatUint(h.Sum64(), 16)
}

func advancedParams(result domain.WaterResult) string {
	var b strings.Builder
	if result.Input.PH != nil {
		fmt.Fprintf(&b, "- pH: %.1f (%s)\n", *result.Input.PH, result.PHStatus)
	}
	if result.Input.Turbidity != nil {
		fmt.Fprintf(&b, "- Turbidity: %.1f NTU (%s)\n", *result.Input.Turbidity, result.TurbidityStatus)
	}
	if result.Input.Salinity != nil {
		fmt.Fprintf(&b, "- Salinity: %.1f ppt (%s)\n", *result.Input.Salinity, result.SalinityStatus)
	}
	return b.String()
}

func fallbackWaterAnalysis(result domain.WaterResult) string {
	var advice string
	switch {
	case result.TDS < 50:
		advice = "Consider remineralisation or blending, since very low mineral content can taste flat."
	case result.TDS <= 300:
		advice = "No treatment is needed for drinking."
	case result.TDS <= 600:
		advice = "It is within the WHO guidance, but a carbon or RO filter can improve taste."
	default:
		advice = "Reverse osmosis or distillation is recommended before drinking."
	}

	return fmt.Sprintf("Your water measures %.0f ppm TDS, rated %s: %s. %s",
		result.TDS, result.Quality.Label, strings.ToLower(result.Quality.Description), advice)
}
