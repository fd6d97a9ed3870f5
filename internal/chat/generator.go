package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

// Generator 프롬프트로부터 답변 텍스트를 만들어내는 외부 생성 서비스
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Ready() bool
}

// NoopGenerator API 키가 없을 때의 기본 구현
type NoopGenerator struct{}

func (n *NoopGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", apperrors.NewExternalError(apperrors.ErrCodeGenerationFailed, "generation provider not configured")
}

func (n *NoopGenerator) Ready() bool { return false }

// OpenAIGenerator OpenAI 호환 Chat Completions API 사용
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIGenerator 생성 클라이언트 생성. 키가 없으면 NoopGenerator 반환.
func NewOpenAIGenerator(apiKey, baseURL, model string, temperature float64, maxTokens int) Generator {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &NoopGenerator{}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyGenerationError(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewExternalError(apperrors.ErrCodeGenerationFailed, "generation response empty")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (g *OpenAIGenerator) Ready() bool { return g.client != nil }

// classifyGenerationError 생성 실패를 세 가지(쿼터 초과, 권한 거부, 내부 오류)로
// 분류한다. 같은 요청 안에서 재시도하지 않는다.
func classifyGenerationError(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewExternalError(apperrors.ErrCodeTimeout, "generation timed out").WithCause(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return apperrors.NewExternalError(apperrors.ErrCodeGenerationQuotaExceeded, "generation quota exceeded").WithCause(err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewExternalError(apperrors.ErrCodeGenerationPermissionDenied, "generation permission denied").WithCause(err)
		}
	}
	return apperrors.NewExternalError(apperrors.ErrCodeGenerationFailed, "generation request failed").WithCause(err)
}
