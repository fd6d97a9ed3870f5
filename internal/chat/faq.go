package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// FAQEntry 키워드와 고정 답변 한 쌍
type FAQEntry struct {
	Keyword string `json:"keyword"`
	Answer  string `json:"answer"`
}

// FAQTable 규칙 기반 고정 FAQ. 질문에 등록된 키워드가 부분 문자열로
// 포함되면 검색이나 생성 없이 고정 답변을 그대로 돌려준다.
// 매칭은 등록 순서를 따르고 대소문자를 구분하지 않는다.
type FAQTable struct {
	entries []FAQEntry
}

// defaultFAQEntries 내장 기본 FAQ
var defaultFAQEntries = []FAQEntry{
	{
		Keyword: "연차 어떻게 사용",
		Answer:  "연차 사용은 그룹웨어 근태관리 시스템에서 신청하실 수 있습니다. 연차는 입사일 기준으로 매년 15일이 부여되며, 미사용 연차는 다음 해로 이월됩니다.",
	},
	{
		Keyword: "출장 신청",
		Answer:  "출장은 그룹웨어의 '결재' → '출장신청' 메뉴에서 신청하세요. 출장 완료 후 7일 이내에 출장보고서를 제출해야 합니다.",
	},
	{
		Keyword: "법인카드 사용",
		Answer:  "법인카드는 업무 관련 경비만 사용 가능하며, 사용 후 영수증과 함께 정산 처리해야 합니다.",
	},
	{
		Keyword: "복무 규정",
		Answer:  "출근시간은 오전 9시, 퇴근시간은 오후 6시이며, 점심시간은 12시~1시입니다. 지각 시 그룹웨어에서 지각사유를 입력해주세요.",
	},
	{
		Keyword: "휴가 신청",
		Answer:  "휴가는 그룹웨어 근태관리에서 사전 신청하시기 바랍니다. 경조사 휴가의 경우 관련 증빙서류가 필요합니다.",
	},
}

// NewFAQTable FAQ 테이블 생성
func NewFAQTable(entries []FAQEntry) *FAQTable {
	return &FAQTable{entries: entries}
}

// LoadFAQ 파일에서 FAQ 항목을 읽는다. 파일이 없으면 내장 기본값을 쓴다.
func LoadFAQ(path string, logger *zap.Logger) *FAQTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Info("faq file not found, using built-in entries", zap.String("path", path))
		return NewFAQTable(defaultFAQEntries)
	}

	var entries []FAQEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn("faq file malformed, using built-in entries",
			zap.String("path", path), zap.Error(err))
		return NewFAQTable(defaultFAQEntries)
	}
	logger.Info("faq loaded", zap.String("path", path), zap.Int("entries", len(entries)))
	return NewFAQTable(entries)
}

// Match 질문에 포함된 첫 번째 키워드의 답변을 돌려준다.
func (t *FAQTable) Match(question string) (string, bool) {
	lowered := strings.ToLower(question)
	for _, entry := range t.entries {
		if strings.Contains(lowered, strings.ToLower(entry.Keyword)) {
			return entry.Answer, true
		}
	}
	return "", false
}

// ByNumber 1부터 시작하는 항목 번호로 답변 조회
func (t *FAQTable) ByNumber(number int) (string, error) {
	if number < 1 || number > len(t.entries) {
		return "", fmt.Errorf("faq number out of range: %d (1~%d)", number, len(t.entries))
	}
	return t.entries[number-1].Answer, nil
}

// Entries 등록 순서대로의 전체 항목 (목록 조회용 복사본)
func (t *FAQTable) Entries() []FAQEntry {
	out := make([]FAQEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len 등록된 항목 수
func (t *FAQTable) Len() int {
	return len(t.entries)
}
