package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartblog/internal/cache"
	apperrors "smartblog/internal/errors"
)

// Generation modes accepted by the AI proxy.
const (
	ModeSummary = "summary"
	ModeGrammar = "grammar"
)

const (
	aiCacheKeyPrefix = "ai:"
	aiCacheTTL       = time.Hour
	aiRequestTimeout = 30 * time.Second
)

// ErrAIKeyMissing is returned when the Gemini API key is not configured.
var ErrAIKeyMissing = errors.New("gemini api key not configured")

// AIService proxies text to the Gemini generation API. It relies on the
// caller already being authenticated; results are cached in Redis keyed by
// mode and content hash.
type AIService interface {
	Generate(ctx context.Context, content, mode string) (string, error)
}

type aiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	cache   *cache.Client
}

// NewAIService creates an AI proxy against baseURL (the production Gemini
// endpoint, or a test server).
func NewAIService(apiKey, model, baseURL string, cacheClient *cache.Client) AIService {
	return &aiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: aiRequestTimeout},
		cache:   cacheClient,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// Generate forwards the content to Gemini with the prompt template for the
// given mode and returns the generated text. Upstream failures are surfaced
// with their detail and never retried.
func (s *aiService) Generate(ctx context.Context, content, mode string) (string, error) {
	if s.apiKey == "" {
		return "", ErrAIKeyMissing
	}

	cacheKey := aiCacheKey(mode, content)
	if cached, _ := s.cache.Get(ctx, cacheKey); cached != nil {
		return string(cached), nil
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(content, mode)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &apperrors.UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.UpstreamError{Detail: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &apperrors.UpstreamError{Detail: fmt.Sprintf("gemini api error: %s", respBody)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &apperrors.UpstreamError{Detail: fmt.Sprintf("unexpected api response format: %v", err)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &apperrors.UpstreamError{Detail: "unexpected api response format: no candidates"}
	}

	result := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	s.cache.Set(ctx, cacheKey, []byte(result), aiCacheTTL)
	return result, nil
}

func aiCacheKey(mode, content string) string {
	sum := sha256.Sum256([]byte(mode + "|" + content))
	return aiCacheKeyPrefix + mode + ":" + hex.EncodeToString(sum[:])
}

func buildPrompt(content, mode string) string {
	if mode == ModeSummary {
		return fmt.Sprintf(`Generate a concise professional summary of the following blog post.
The summary should be 2-3 sentences and capture the main points clearly.

Blog content:
%s

Professional Summary:`, content)
	}
	return fmt.Sprintf(`Fix all grammar mistakes and improve the clarity of the following text.
Do not change the meaning or core message. Keep the same tone and style.
Only return the corrected text, without any explanations.

Original text:
%s

Corrected text:`, content)
}
