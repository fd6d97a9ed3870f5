package knowledge

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

// chunkRow 는 chunks 테이블의 행. 임베딩은 JSON 배열 문자열로 저장한다
// (빈 문자열 = 임베딩 없음, 유사도 검색에서 제외).
type chunkRow struct {
	ID        string `gorm:"column:id;primaryKey"`
	Content   string `gorm:"column:content"`
	Meta      string `gorm:"column:meta"`
	Embedding string `gorm:"column:embedding"`
}

func (chunkRow) TableName() string { return "chunks" }

// Store 단일 파일 SQLite 기반 청크 저장소.
// 단일 컬렉션, append-위주, 수천 청크 규모를 전제로 한다.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// OpenStore opens (or creates) the chunk store at path and ensures the
// chunks table exists.
func OpenStore(path string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	if err := db.AutoMigrate(&chunkRow{}); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	return NewStore(db, logger), nil
}

// NewStore wraps an already opened gorm connection.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Upsert writes each chunk, replacing any existing row with the same ID.
// Rows are written one by one: a crash mid-batch may leave a prefix of the
// batch persisted, but every individual row write is atomic.
func (s *Store) Upsert(ctx context.Context, chunks []Chunk) (int, error) {
	written := 0
	for _, chunk := range chunks {
		row := chunkRow{
			ID:        chunk.ID,
			Content:   chunk.Text,
			Meta:      encodeMeta(chunk.Meta),
			Embedding: encodeEmbedding(chunk.Embedding),
		}
		err := s.db.WithContext(ctx).
			Exec(`INSERT OR REPLACE INTO chunks (id, content, meta, embedding) VALUES (?, ?, ?, ?)`,
				row.ID, row.Content, row.Meta, row.Embedding).Error
		if err != nil {
			return written, apperrors.NewStoreUnavailableError(fmt.Errorf("upsert chunk %s: %w", chunk.ID, err))
		}
		written++
	}
	s.logger.Debug("chunks upserted", zap.Int("count", written))
	return written, nil
}

// AllWithEmbedding returns every chunk that has a non-empty embedding.
// 순서는 보장하지 않는다.
func (s *Store) AllWithEmbedding(ctx context.Context) ([]Chunk, error) {
	var rows []chunkRow
	err := s.db.WithContext(ctx).
		Where("embedding IS NOT NULL AND embedding <> ''").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	chunks := make([]Chunk, 0, len(rows))
	for _, row := range rows {
		embedding := decodeEmbedding(row.Embedding)
		if len(embedding) == 0 {
			// 손상된 임베딩 컬럼은 임베딩 없음으로 취급
			continue
		}
		chunks = append(chunks, Chunk{
			ID:        row.ID,
			Text:      row.Content,
			Meta:      decodeMeta(row.Meta),
			Embedding: embedding,
		})
	}
	return chunks, nil
}

// Count 저장된 전체 청크 수
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&chunkRow{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewStoreUnavailableError(err)
	}
	return count, nil
}

// Clear deletes every row. Used for --force full rebuilds only.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec(`DELETE FROM chunks`).Error; err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	s.logger.Info("chunk store cleared")
	return nil
}

// SourceFiles 색인된 원본 파일 이름 집합. 증분 색인의 기준이 된다.
func (s *Store) SourceFiles(ctx context.Context) (map[string]struct{}, error) {
	counts, err := s.SourceFileCounts(ctx)
	if err != nil {
		return nil, err
	}
	files := make(map[string]struct{}, len(counts))
	for name := range counts {
		files[name] = struct{}{}
	}
	return files, nil
}

// SourceFileCounts 파일 이름별 청크 수 (상태/통계용)
func (s *Store) SourceFileCounts(ctx context.Context) (map[string]int, error) {
	var rows []chunkRow
	if err := s.db.WithContext(ctx).Select("meta").Find(&rows).Error; err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	counts := make(map[string]int)
	for _, row := range rows {
		meta := decodeMeta(row.Meta)
		if name, ok := meta[MetaFileName].(string); ok && name != "" {
			counts[name]++
		}
	}
	return counts, nil
}

// HealthCheck pings the underlying database connection.
func (s *Store) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	if err := sqlDB.Ping(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
