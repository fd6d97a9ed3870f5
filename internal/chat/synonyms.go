package chat

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// SynonymMap 표준 키워드 → 대체 표현 목록.
// 질문에 표준 키워드나 그 동의어가 포함되면 검색 질의를 표준 키워드로
// 바꾼다. 사용자에게 보여주는 질문 원문은 바꾸지 않는다.
type SynonymMap struct {
	// canonical 키를 정렬해 들고 있어 매칭 순서가 결정적이다
	canonicals []string
	alternates map[string][]string
}

// NewSynonymMap 동의어 맵 생성
func NewSynonymMap(table map[string][]string) *SynonymMap {
	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)
	return &SynonymMap{canonicals: canonicals, alternates: table}
}

// LoadSynonyms 파일에서 동의어 맵을 읽는다. 파일이 없거나 깨져 있으면
// 빈 맵으로 동작한다 (치명 오류 아님).
func LoadSynonyms(path string, logger *zap.Logger) *SynonymMap {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Info("synonym file not found, canonicalization disabled", zap.String("path", path))
		return NewSynonymMap(nil)
	}

	var table map[string][]string
	if err := json.Unmarshal(raw, &table); err != nil {
		logger.Warn("synonym file malformed, canonicalization disabled",
			zap.String("path", path), zap.Error(err))
		return NewSynonymMap(nil)
	}
	logger.Info("synonyms loaded", zap.String("path", path), zap.Int("keywords", len(table)))
	return NewSynonymMap(table)
}

// Canonicalize 질문에 표준 키워드나 동의어가 포함되면 (표준 키워드, true)를
// 돌려준다. 없으면 원문 그대로 반환.
func (m *SynonymMap) Canonicalize(question string) (string, bool) {
	lowered := strings.ToLower(question)
	for _, canonical := range m.canonicals {
		if strings.Contains(lowered, strings.ToLower(canonical)) {
			return canonical, true
		}
		for _, alternate := range m.alternates[canonical] {
			if alternate != "" && strings.Contains(lowered, strings.ToLower(alternate)) {
				return canonical, true
			}
		}
	}
	return question, false
}
