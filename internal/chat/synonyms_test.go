package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSynonyms() *SynonymMap {
	return NewSynonymMap(map[string][]string{
		"연차":   {"유급휴가", "월차"},
		"법인카드": {"회사카드", "법카"},
	})
}

func TestCanonicalizeAlternate(t *testing.T) {
	synonyms := testSynonyms()

	canonical, ok := synonyms.Canonicalize("법카 한도가 얼마인가요?")
	require.True(t, ok)
	assert.Equal(t, "법인카드", canonical)
}

func TestCanonicalizeCanonicalKeyword(t *testing.T) {
	synonyms := testSynonyms()

	canonical, ok := synonyms.Canonicalize("연차 이월 규정 알려줘")
	require.True(t, ok)
	assert.Equal(t, "연차", canonical)
}

func TestCanonicalizeNoHit(t *testing.T) {
	synonyms := testSynonyms()

	text, ok := synonyms.Canonicalize("식대 지원이 있나요?")
	assert.False(t, ok)
	assert.Equal(t, "식대 지원이 있나요?", text)
}

func TestCanonicalizeDeterministicOrder(t *testing.T) {
	synonyms := NewSynonymMap(map[string][]string{
		"출장": {"외근"},
		"연차": {"외근"},
	})

	// 같은 동의어가 여러 표준 키워드에 걸리면 정렬 순서상 앞선 키워드가 이긴다
	canonical, ok := synonyms.Canonicalize("외근 처리 방법")
	require.True(t, ok)
	assert.Equal(t, "연차", canonical)
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	synonyms := LoadSynonyms(filepath.Join(t.TempDir(), "absent.json"), nil)

	text, ok := synonyms.Canonicalize("연차 규정")
	assert.False(t, ok)
	assert.Equal(t, "연차 규정", text)
}

func TestLoadSynonymsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"연차": ["월차"]}`), 0o644))

	synonyms := LoadSynonyms(path, nil)
	canonical, ok := synonyms.Canonicalize("월차 쓰고 싶어요")
	require.True(t, ok)
	assert.Equal(t, "연차", canonical)
}
