package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// 메타데이터 키
const (
	MetaFileName   = "file_name"
	MetaSimilarity = "similarity"
)

// Chunk 검색의 최소 단위. 한 문서를 문장 창(기본 5문장)으로 나눈 조각이며
// 자체 임베딩을 가진다. 저장 이후에는 전체 교체 외의 수정이 없다.
type Chunk struct {
	ID        string
	Text      string
	Meta      map[string]interface{}
	Embedding []float32
}

// SourceFile 청크가 속한 원본 문서의 파일 이름 (없으면 빈 문자열)
func (c Chunk) SourceFile() string {
	if c.Meta == nil {
		return ""
	}
	if name, ok := c.Meta[MetaFileName].(string); ok {
		return name
	}
	return ""
}

// HasEmbedding reports whether the chunk can participate in similarity scans.
func (c Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// ScoredChunk 질의 시점에만 존재하는 결과 타입. Similarity는 현재 질의와의
// 코사인 유사도([-1, 1])이며 저장되지 않는다.
type ScoredChunk struct {
	Chunk
	Similarity float64
}

// ChunkID derives a stable chunk identity from source file, window position
// and content. Re-splitting a document yields new IDs.
func ChunkID(sourceFile string, index int, text string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", sourceFile, index, text)))
	return hex.EncodeToString(sum[:16])
}

// NewChunk 원본 파일 메타데이터가 붙은 청크 생성
func NewChunk(sourceFile string, index int, text string) Chunk {
	return Chunk{
		ID:   ChunkID(sourceFile, index, text),
		Text: text,
		Meta: map[string]interface{}{MetaFileName: sourceFile},
	}
}

// decodeMeta parses a stored meta JSON document. Malformed or empty meta
// degrades to an empty map, never to an error: retrieval must stay usable
// over partially written or legacy rows.
func decodeMeta(raw string) map[string]interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}
	var meta map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil || meta == nil {
		return map[string]interface{}{}
	}
	return meta
}

func encodeMeta(meta map[string]interface{}) string {
	if len(meta) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func encodeEmbedding(embedding []float32) string {
	if len(embedding) == 0 {
		return ""
	}
	raw, err := json.Marshal(embedding)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeEmbedding(raw string) []float32 {
	if raw == "" {
		return nil
	}
	var embedding []float32
	if err := json.Unmarshal([]byte(raw), &embedding); err != nil {
		return nil
	}
	return embedding
}
