package di

import (
	"fmt"
	"strings"

	"go.uber.org/dig"

	"github.com/hibot/backend-go/internal/chat"
	"github.com/hibot/backend-go/internal/config"
	"github.com/hibot/backend-go/internal/knowledge"
	"github.com/hibot/backend-go/internal/logger"
)

// RegisterProviders 모든 의존성 제공자를 등록한다.
func RegisterProviders(container *dig.Container) error {
	// 설정
	if err := container.Provide(func() (*config.Config, error) {
		cfg := config.AppConfig
		if cfg == nil {
			return nil, fmt.Errorf("config not loaded")
		}
		return cfg, nil
	}); err != nil {
		return err
	}

	// 청크 저장소
	if err := container.Provide(func(cfg *config.Config) (*knowledge.Store, error) {
		return knowledge.OpenStore(cfg.Store.Path, logger.GetLogger())
	}); err != nil {
		return err
	}

	// 파서 / 변환기 / 청커
	if err := container.Provide(knowledge.NewParserManager); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config, parsers *knowledge.ParserManager) *knowledge.DocumentConverter {
		return knowledge.NewDocumentConverter(
			splitCommand(cfg.Documents.ConvertCommand),
			cfg.Documents.ConvertDir,
			parsers,
			logger.GetLogger(),
		)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config) *knowledge.SentenceChunker {
		return knowledge.NewSentenceChunker(cfg.Documents.SentencesPerChunk)
	}); err != nil {
		return err
	}

	// 임베딩 / 생성 클라이언트
	if err := container.Provide(func(cfg *config.Config) knowledge.Embedder {
		return knowledge.NewOpenAIEmbedder(
			cfg.Embedding.APIKey,
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			cfg.Embedding.Dimensions,
		)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config) chat.Generator {
		return chat.NewOpenAIGenerator(
			cfg.Generation.APIKey,
			cfg.Generation.BaseURL,
			cfg.Generation.Model,
			cfg.Generation.Temperature,
			cfg.Generation.MaxTokens,
		)
	}); err != nil {
		return err
	}

	// 인덱서와 감시기
	if err := container.Provide(func(cfg *config.Config, store *knowledge.Store, parsers *knowledge.ParserManager, converter *knowledge.DocumentConverter, chunker *knowledge.SentenceChunker, embedder knowledge.Embedder) *knowledge.Indexer {
		return knowledge.NewIndexer(store, parsers, converter, chunker, embedder,
			cfg.Documents.Extensions, logger.GetLogger())
	}); err != nil {
		return err
	}

	// 리트리버
	if err := container.Provide(func(store *knowledge.Store) *knowledge.Retriever {
		return knowledge.NewRetriever(store, logger.GetLogger())
	}); err != nil {
		return err
	}

	// 정적 데이터 (FAQ / 동의어 / 직원 명부)
	if err := container.Provide(func(cfg *config.Config) *chat.FAQTable {
		return chat.LoadFAQ(cfg.Data.FAQPath, logger.GetLogger())
	}); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config) *chat.SynonymMap {
		return chat.LoadSynonyms(cfg.Data.SynonymsPath, logger.GetLogger())
	}); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config) *chat.StaffDirectory {
		return chat.LoadStaff(cfg.Data.StaffPath, logger.GetLogger())
	}); err != nil {
		return err
	}

	// 챗봇 코어
	if err := container.Provide(func(cfg *config.Config, faq *chat.FAQTable, synonyms *chat.SynonymMap, directory *chat.StaffDirectory, embedder knowledge.Embedder, retriever *knowledge.Retriever, generator chat.Generator) *chat.Bot {
		return chat.NewBot(faq, synonyms, directory, embedder, retriever, generator,
			cfg.Retrieval.TopK, cfg.Retrieval.MinSimilarity, logger.GetLogger())
	}); err != nil {
		return err
	}

	return nil
}

// splitCommand 공백으로 구분된 변환 명령 문자열을 인자 목록으로 나눈다.
func splitCommand(command string) []string {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	return strings.Fields(command)
}
