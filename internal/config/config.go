package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Documents  DocumentsConfig
	Embedding  EmbeddingConfig
	Generation GenerationConfig
	Retrieval  RetrievalConfig
	Data       DataConfig
}

type ServerConfig struct {
	Port string
	Env  string
	// RequestTimeoutSecs bounds a single chat request end to end
	// (embedding + retrieval + generation).
	RequestTimeoutSecs int
}

type StoreConfig struct {
	// Path 청크 저장소 SQLite 파일 경로
	Path string
}

type DocumentsConfig struct {
	// SourceDir 원본 문서(HWP/HWPX/PDF) 폴더
	SourceDir string
	// Extensions: indexable raw formats in SourceDir.
	Extensions []string
	// ConvertCommand converts a .hwp file into .hwpx; "{input}" and
	// "{output}" placeholders are substituted. Empty = conversion disabled.
	ConvertCommand string
	// ConvertDir is where converted intermediates are written.
	ConvertDir string
	// SentencesPerChunk 문장 단위 청크 크기 (non-overlapping windows)
	SentencesPerChunk int
	// Watch enables fsnotify-based incremental indexing on SourceDir.
	Watch bool
}

type EmbeddingConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Dimensions overrides the model's known output size (0 = lookup table).
	Dimensions int
}

type GenerationConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

type RetrievalConfig struct {
	TopK          int
	MinSimilarity float64
}

type DataConfig struct {
	// 정적 데이터 파일 경로 (없으면 내장 기본값/빈 값으로 동작)
	FAQPath      string
	SynonymsPath string
	StaffPath    string
}

var AppConfig *Config

// LoadConfig reads configuration from environment variables (HIBOT_ prefix)
// with defaults suitable for local development.
func LoadConfig() error {
	viper.SetDefault("server.port", "8001")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.request_timeout_secs", 60)

	viper.SetDefault("store.path", "./hibot_store.db")

	viper.SetDefault("documents.source_dir", "./docs")
	viper.SetDefault("documents.extensions", []string{".hwp", ".hwpx", ".pdf"})
	viper.SetDefault("documents.convert_command", "")
	viper.SetDefault("documents.convert_dir", "./docs-hwpx")
	viper.SetDefault("documents.sentences_per_chunk", 5)
	viper.SetDefault("documents.watch", false)

	viper.SetDefault("embedding.base_url", "")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.dimensions", 0)

	viper.SetDefault("generation.base_url", "")
	viper.SetDefault("generation.model", "gpt-4o-mini")
	viper.SetDefault("generation.temperature", 0.3)
	viper.SetDefault("generation.max_tokens", 1024)

	viper.SetDefault("retrieval.top_k", 5)
	viper.SetDefault("retrieval.min_similarity", 0.5)

	viper.SetDefault("data.faq_path", "./data/faq.json")
	viper.SetDefault("data.synonyms_path", "./data/synonyms.json")
	viper.SetDefault("data.staff_path", "./data/staff.json")

	viper.SetEnvPrefix("HIBOT")
	viper.AutomaticEnv()

	// 관례적인 환경변수 이름도 지원
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if viper.GetString("embedding.api_key") == "" {
			viper.Set("embedding.api_key", key)
		}
		if viper.GetString("generation.api_key") == "" {
			viper.Set("generation.api_key", key)
		}
	}
	if dir := os.Getenv("HIBOT_DOCS_DIR"); dir != "" {
		viper.Set("documents.source_dir", dir)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               viper.GetString("server.port"),
			Env:                viper.GetString("server.env"),
			RequestTimeoutSecs: viper.GetInt("server.request_timeout_secs"),
		},
		Store: StoreConfig{
			Path: viper.GetString("store.path"),
		},
		Documents: DocumentsConfig{
			SourceDir:         viper.GetString("documents.source_dir"),
			Extensions:        viper.GetStringSlice("documents.extensions"),
			ConvertCommand:    viper.GetString("documents.convert_command"),
			ConvertDir:        viper.GetString("documents.convert_dir"),
			SentencesPerChunk: viper.GetInt("documents.sentences_per_chunk"),
			Watch:             viper.GetBool("documents.watch"),
		},
		Embedding: EmbeddingConfig{
			APIKey:     viper.GetString("embedding.api_key"),
			BaseURL:    viper.GetString("embedding.base_url"),
			Model:      viper.GetString("embedding.model"),
			Dimensions: viper.GetInt("embedding.dimensions"),
		},
		Generation: GenerationConfig{
			APIKey:      viper.GetString("generation.api_key"),
			BaseURL:     viper.GetString("generation.base_url"),
			Model:       viper.GetString("generation.model"),
			Temperature: viper.GetFloat64("generation.temperature"),
			MaxTokens:   viper.GetInt("generation.max_tokens"),
		},
		Retrieval: RetrievalConfig{
			TopK:          viper.GetInt("retrieval.top_k"),
			MinSimilarity: viper.GetFloat64("retrieval.min_similarity"),
		},
		Data: DataConfig{
			FAQPath:      viper.GetString("data.faq_path"),
			SynonymsPath: viper.GetString("data.synonyms_path"),
			StaffPath:    viper.GetString("data.staff_path"),
		},
	}

	if err := validate(cfg); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

func validate(cfg *Config) error {
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.MinSimilarity < -1 || cfg.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("retrieval.min_similarity must be in [-1, 1], got %f", cfg.Retrieval.MinSimilarity)
	}
	if cfg.Documents.SentencesPerChunk <= 0 {
		return fmt.Errorf("documents.sentences_per_chunk must be positive, got %d", cfg.Documents.SentencesPerChunk)
	}
	return nil
}
