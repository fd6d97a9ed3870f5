package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

// IndexReport 인덱싱 실행 결과 요약
type IndexReport struct {
	Processed   int      `json:"processed"`
	Skipped     int      `json:"skipped"`
	Failed      int      `json:"failed"`
	FailedFiles []string `json:"failed_files,omitempty"`
}

// IndexerStore 인덱서가 필요로 하는 저장소 연산
type IndexerStore interface {
	Upsert(ctx context.Context, chunks []Chunk) (int, error)
	Clear(ctx context.Context) error
	SourceFiles(ctx context.Context) (map[string]struct{}, error)
}

// Indexer 소스 디렉터리의 문서를 청크로 쪼개 임베딩과 함께 저장한다.
type Indexer struct {
	store      IndexerStore
	parsers    *ParserManager
	converter  *DocumentConverter
	chunker    *SentenceChunker
	embedder   Embedder
	extensions []string
	logger     *zap.Logger
}

// NewIndexer 인덱서 생성. extensions는 처리 대상 확장자 목록 (예: .hwp, .hwpx, .pdf)
func NewIndexer(store IndexerStore, parsers *ParserManager, converter *DocumentConverter, chunker *SentenceChunker, embedder Embedder, extensions []string, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		normalized = append(normalized, strings.ToLower(ext))
	}
	return &Indexer{
		store:      store,
		parsers:    parsers,
		converter:  converter,
		chunker:    chunker,
		embedder:   embedder,
		extensions: normalized,
		logger:     logger,
	}
}

// IndexNewDocuments 디렉터리에서 아직 저장되지 않은 파일만 골라 인덱싱한다.
// force가 참이면 저장소를 비우고 전체를 다시 인덱싱한다. 파일 단위 실패는
// 실행을 멈추지 않고 보고서에 집계된다. 저장소 오류만 실행을 중단시킨다.
func (ix *Indexer) IndexNewDocuments(ctx context.Context, sourceDir string, force bool) (*IndexReport, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError(sourceDir, err)
	}

	if force {
		if err := ix.store.Clear(ctx); err != nil {
			return nil, err
		}
		ix.logger.Info("store cleared for full reindex", zap.String("source_dir", sourceDir))
	}

	existing, err := ix.store.SourceFiles(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ix.accepts(entry.Name()) {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Strings(candidates)

	report := &IndexReport{}
	for _, name := range candidates {
		if _, ok := existing[name]; ok {
			report.Skipped++
			continue
		}
		if err := ix.indexFile(ctx, sourceDir, name); err != nil {
			if apperrors.CodeOf(err) == apperrors.ErrCodeStoreUnavailable {
				return report, err
			}
			ix.logger.Warn("file indexing failed",
				zap.String("file", name),
				zap.Error(err))
			report.Failed++
			report.FailedFiles = append(report.FailedFiles, name)
			continue
		}
		report.Processed++
	}

	ix.logger.Info("indexing run finished",
		zap.String("source_dir", sourceDir),
		zap.Int("processed", report.Processed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (ix *Indexer) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range ix.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// indexFile 파일 하나를 변환, 파싱, 청킹, 임베딩해 저장한다.
// 메타데이터의 file_name은 변환 전 원본 파일명을 유지한다.
func (ix *Indexer) indexFile(ctx context.Context, sourceDir, name string) error {
	path := filepath.Join(sourceDir, name)

	readable, err := ix.converter.Convert(ctx, path)
	if err != nil {
		return err
	}

	file, err := os.Open(readable)
	if err != nil {
		return apperrors.NewExternalError(apperrors.ErrCodeExtractionFailed, fmt.Sprintf("파일을 열 수 없습니다: %s", name)).WithCause(err)
	}
	text, err := ix.parsers.Parse(file, filepath.Base(readable))
	file.Close()
	if err != nil {
		return apperrors.NewExternalError(apperrors.ErrCodeExtractionFailed, fmt.Sprintf("텍스트 추출 실패: %s", name)).WithCause(err)
	}
	if strings.TrimSpace(text) == "" {
		return apperrors.NewExternalError(apperrors.ErrCodeExtractionFailed, fmt.Sprintf("추출된 텍스트가 비어 있습니다: %s", name))
	}

	pieces := ix.chunker.Split(text)
	if len(pieces) == 0 {
		return apperrors.NewExternalError(apperrors.ErrCodeExtractionFailed, fmt.Sprintf("청크를 만들 수 없습니다: %s", name))
	}

	embeddings, err := ix.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		return err
	}
	if len(embeddings) != len(pieces) {
		return apperrors.NewExternalError(apperrors.ErrCodeEmbeddingFailed, fmt.Sprintf("임베딩 개수가 청크 수와 다릅니다: %s", name))
	}

	chunks := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunk := NewChunk(name, i, piece)
		chunk.Embedding = embeddings[i]
		chunks = append(chunks, chunk)
	}

	stored, err := ix.store.Upsert(ctx, chunks)
	if err != nil {
		return err
	}

	ix.logger.Info("file indexed",
		zap.String("file", name),
		zap.Int("chunks", stored))
	return nil
}
