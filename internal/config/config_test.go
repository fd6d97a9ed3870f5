package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, LoadConfig())
	require.NotNil(t, AppConfig)

	assert.Equal(t, "8001", AppConfig.Server.Port)
	assert.Equal(t, "./hibot_store.db", AppConfig.Store.Path)
	assert.Equal(t, []string{".hwp", ".hwpx", ".pdf"}, AppConfig.Documents.Extensions)
	assert.Equal(t, 5, AppConfig.Documents.SentencesPerChunk)
	assert.Equal(t, 5, AppConfig.Retrieval.TopK)
	assert.InDelta(t, 0.5, AppConfig.Retrieval.MinSimilarity, 1e-9)
	assert.Equal(t, "text-embedding-3-small", AppConfig.Embedding.Model)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HIBOT_DOCS_DIR", "/srv/docs")

	require.NoError(t, LoadConfig())

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, "sk-test", AppConfig.Embedding.APIKey)
	assert.Equal(t, "sk-test", AppConfig.Generation.APIKey)
	assert.Equal(t, "/srv/docs", AppConfig.Documents.SourceDir)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		Store:     StoreConfig{Path: "x.db"},
		Retrieval: RetrievalConfig{TopK: 5, MinSimilarity: 1.5},
		Documents: DocumentsConfig{SentencesPerChunk: 5},
	}
	assert.Error(t, validate(cfg))

	cfg.Retrieval.MinSimilarity = 0.5
	cfg.Retrieval.TopK = 0
	assert.Error(t, validate(cfg))

	cfg.Retrieval.TopK = 5
	cfg.Documents.SentencesPerChunk = 0
	assert.Error(t, validate(cfg))

	cfg.Documents.SentencesPerChunk = 5
	assert.NoError(t, validate(cfg))
}
