package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

func generationServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestNewOpenAIGeneratorWithoutKey(t *testing.T) {
	generator := NewOpenAIGenerator("", "", "", 0.3, 512)
	assert.False(t, generator.Ready())

	_, err := generator.Generate(context.Background(), "프롬프트")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGenerationFailed, apperrors.CodeOf(err))
}

func TestGenerateSuccess(t *testing.T) {
	server := generationServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "연차는 15일입니다.  "}, "finish_reason": "stop"}]
	}`)
	defer server.Close()

	generator := NewOpenAIGenerator("test-key", server.URL, "gpt-4o-mini", 0.3, 512)
	answer, err := generator.Generate(context.Background(), "연차가 며칠인가요?")
	require.NoError(t, err)
	assert.Equal(t, "연차는 15일입니다.", answer)
}

func TestGenerateClassifiesQuota(t *testing.T) {
	server := generationServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "rate limit", "type": "requests"}}`)
	defer server.Close()

	generator := NewOpenAIGenerator("test-key", server.URL, "gpt-4o-mini", 0.3, 512)
	_, err := generator.Generate(context.Background(), "프롬프트")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGenerationQuotaExceeded, apperrors.CodeOf(err))
	assert.Equal(t, http.StatusTooManyRequests, apperrors.GetAppError(err).HTTPCode)
}

func TestGenerateClassifiesPermission(t *testing.T) {
	server := generationServer(t, http.StatusUnauthorized,
		`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`)
	defer server.Close()

	generator := NewOpenAIGenerator("test-key", server.URL, "gpt-4o-mini", 0.3, 512)
	_, err := generator.Generate(context.Background(), "프롬프트")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGenerationPermissionDenied, apperrors.CodeOf(err))
}

func TestGenerateClassifiesInternal(t *testing.T) {
	server := generationServer(t, http.StatusInternalServerError,
		`{"error": {"message": "boom", "type": "server_error"}}`)
	defer server.Close()

	generator := NewOpenAIGenerator("test-key", server.URL, "gpt-4o-mini", 0.3, 512)
	_, err := generator.Generate(context.Background(), "프롬프트")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGenerationFailed, apperrors.CodeOf(err))
}

func TestUserMessagePerErrorKind(t *testing.T) {
	quota := UserMessage(apperrors.NewExternalError(apperrors.ErrCodeGenerationQuotaExceeded, "quota"))
	permission := UserMessage(apperrors.NewExternalError(apperrors.ErrCodeGenerationPermissionDenied, "denied"))
	internal := UserMessage(apperrors.NewExternalError(apperrors.ErrCodeGenerationFailed, "boom"))
	timeout := UserMessage(apperrors.NewExternalError(apperrors.ErrCodeTimeout, "slow"))

	// 실패 종류마다 서로 다른 사용자 문구를 보여준다
	messages := map[string]struct{}{quota: {}, permission: {}, internal: {}, timeout: {}}
	assert.Len(t, messages, 4)
	for message := range messages {
		assert.Contains(t, message, "죄송합니다")
	}
}
