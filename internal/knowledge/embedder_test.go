package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

func TestNewOpenAIEmbedderWithoutKey(t *testing.T) {
	embedder := NewOpenAIEmbedder("", "", "", 0)
	assert.False(t, embedder.Ready())
	assert.Equal(t, 0, embedder.Dimensions())

	_, err := embedder.Embed(context.Background(), "질문")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmbeddingFailed, apperrors.CodeOf(err))
}

func TestNewOpenAIEmbedderDimensions(t *testing.T) {
	assert.Equal(t, 1536, NewOpenAIEmbedder("key", "", "text-embedding-3-small", 0).Dimensions())
	assert.Equal(t, 3072, NewOpenAIEmbedder("key", "", "text-embedding-3-large", 0).Dimensions())
	assert.Equal(t, 768, NewOpenAIEmbedder("key", "", "custom-korean-model", 768).Dimensions())
}

func TestOpenAIEmbedderBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		type datum struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		resp := map[string]interface{}{
			"object": "list",
			"model":  req.Model,
			"data": []datum{
				{Object: "embedding", Index: 0, Embedding: []float32{0.1, 0.2}},
				{Object: "embedding", Index: 1, Embedding: []float32{0.3, 0.4}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder("test-key", server.URL, "text-embedding-3-small", 2)
	vectors, err := embedder.EmbedBatch(context.Background(), []string{"연차 규정", "복지 규정"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	assert.Equal(t, []float32{0.3, 0.4}, vectors[1])
}

func TestOpenAIEmbedderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder("test-key", server.URL, "text-embedding-3-small", 2)
	_, err := embedder.EmbedBatch(context.Background(), []string{"질문"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmbeddingFailed, apperrors.CodeOf(err))
}

func TestOpenAIEmbedderRejectsEmptyInput(t *testing.T) {
	embedder := NewOpenAIEmbedder("test-key", "http://localhost:1", "text-embedding-3-small", 2)

	_, err := embedder.EmbedBatch(context.Background(), nil)
	assert.Error(t, err)
	_, err = embedder.EmbedBatch(context.Background(), []string{"  "})
	assert.Error(t, err)
}
