package knowledge

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"
)

// ChunkSource 리트리버가 필요로 하는 저장소 동작. 소비자 쪽에서 정의하는
// 인터페이스이므로 *Store 외에 테스트 대역도 그대로 들어온다.
type ChunkSource interface {
	AllWithEmbedding(ctx context.Context) ([]Chunk, error)
}

// Retriever 전수 스캔 코사인 유사도 검색기.
// ANN 인덱스 없이 저장된 모든 임베딩을 매번 스캔한다. 수천 청크 규모까지는
// 충분하며, 그 이상으로 커지면 같은 Retrieve 계약 뒤에 인덱스 구조를 끼우면
// 된다.
type Retriever struct {
	source ChunkSource
	logger *zap.Logger
}

// NewRetriever 리트리버 생성
func NewRetriever(source ChunkSource, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{source: source, logger: logger}
}

// Retrieve returns up to topK chunks whose cosine similarity against
// queryEmbedding is at least minSimilarity, ordered by descending similarity.
// Fewer than topK (possibly zero) chunks are returned when not enough pass
// the threshold; the result is never padded.
func (r *Retriever) Retrieve(ctx context.Context, queryEmbedding []float32, topK int, minSimilarity float64) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = 5
	}

	chunks, err := r.source.AllWithEmbedding(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		sim := cosineSimilarity(queryEmbedding, chunk.Embedding)
		if sim < minSimilarity {
			continue
		}
		if chunk.Meta == nil {
			chunk.Meta = map[string]interface{}{}
		}
		chunk.Meta[MetaSimilarity] = sim
		scored = append(scored, ScoredChunk{Chunk: chunk, Similarity: sim})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	r.logger.Debug("retrieval scan finished",
		zap.Int("scanned", len(chunks)),
		zap.Int("returned", len(scored)),
		zap.Float64("min_similarity", minSimilarity))
	return scored, nil
}

// cosineSimilarity dot(a,b) / (||a|| * ||b||).
// 영벡터는 분모가 0이 되므로 -1(절대 매칭 안 됨)로 처리한다.
// 차원이 다른 벡터도 비교 불가로 보고 -1을 준다.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return -1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
