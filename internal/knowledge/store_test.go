package knowledge

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreUpsertReplacesSameID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunk := NewChunk("rules.hwp", 0, "연차는 15일이다.")
	chunk.Embedding = []float32{1, 0}

	written, err := store.Upsert(ctx, []Chunk{chunk})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// 같은 ID로 다시 쓰면 행 수는 그대로, 내용은 교체
	chunk.Text = "연차는 16일이다."
	_, err = store.Upsert(ctx, []Chunk{chunk})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	chunks, err := store.AllWithEmbedding(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "연차는 16일이다.", chunks[0].Text)
	assert.Equal(t, "rules.hwp", chunks[0].SourceFile())
}

func TestStoreAllWithEmbeddingSkipsUnembedded(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	withEmbedding := NewChunk("a.hwp", 0, "본문")
	withEmbedding.Embedding = []float32{0.1, 0.2}
	withoutEmbedding := NewChunk("b.hwp", 0, "임베딩 없는 청크")

	_, err := store.Upsert(ctx, []Chunk{withEmbedding, withoutEmbedding})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	chunks, err := store.AllWithEmbedding(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, withEmbedding.ID, chunks[0].ID)
}

func TestStoreMalformedMetaDegradesToEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.db.Exec(`INSERT INTO chunks (id, content, meta, embedding) VALUES (?, ?, ?, ?)`,
		"broken", "본문", "{not json", `[0.5,0.5]`).Error
	require.NoError(t, err)

	chunks, err := store.AllWithEmbedding(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.NotNil(t, chunks[0].Meta)
	assert.Empty(t, chunks[0].Meta)
	assert.Equal(t, "", chunks[0].SourceFile())
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunk := NewChunk("a.hwp", 0, "본문")
	_, err := store.Upsert(ctx, []Chunk{chunk})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestStoreSourceFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var chunks []Chunk
	for i := 0; i < 3; i++ {
		chunks = append(chunks, NewChunk("rules.hwp", i, "규정 본문"))
	}
	chunks = append(chunks, NewChunk("welfare.pdf", 0, "복지 본문"))

	_, err := store.Upsert(ctx, chunks)
	require.NoError(t, err)

	files, err := store.SourceFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, "rules.hwp")
	assert.Contains(t, files, "welfare.pdf")

	counts, err := store.SourceFileCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts["rules.hwp"])
	assert.Equal(t, 1, counts["welfare.pdf"])
}

func TestStoreHealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck())
}

func TestStoreHealthCheckFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(assert.AnError)

	db, err := gorm.Open(sqlite.Dialector{Conn: mockDB}, &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	store := NewStore(db, nil)
	err = store.HealthCheck()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
