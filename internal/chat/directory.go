package chat

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

// StaffRecord 담당자 한 명의 직원 명부 항목
type StaffRecord struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Phone      string   `json:"phone"`
	Tasks      []string `json:"tasks"`
}

// StaffDirectory 문서 검색이 비었을 때의 담당자 안내 폴백.
// 명부 순서가 곧 동점 처리 순서다 (먼저 등록된 사람이 이긴다).
type StaffDirectory struct {
	records []StaffRecord
}

// NewStaffDirectory 명부 생성
func NewStaffDirectory(records []StaffRecord) *StaffDirectory {
	return &StaffDirectory{records: records}
}

// LoadStaff 파일에서 직원 명부를 읽는다. 파일이 없거나 깨져 있으면
// 빈 명부로 동작한다.
func LoadStaff(path string, logger *zap.Logger) *StaffDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Info("staff file not found, directory fallback disabled", zap.String("path", path))
		return NewStaffDirectory(nil)
	}

	var records []StaffRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("staff file malformed, directory fallback disabled",
			zap.String("path", path), zap.Error(err))
		return NewStaffDirectory(nil)
	}
	logger.Info("staff directory loaded", zap.String("path", path), zap.Int("records", len(records)))
	return NewStaffDirectory(records)
}

// Match 질문 토큰이 담당 업무에 가장 많이 등장하는 직원을 찾는다.
// 2글자(룬) 미만 토큰은 버린다. 아무도 0점을 넘지 못하면 매칭 없음.
func (d *StaffDirectory) Match(question string) (StaffRecord, bool) {
	tokens := tokenize(question)
	if len(tokens) == 0 {
		return StaffRecord{}, false
	}

	best := -1
	bestScore := 0
	for i, record := range d.records {
		score := 0
		for _, task := range record.Tasks {
			loweredTask := strings.ToLower(task)
			for _, token := range tokens {
				score += strings.Count(loweredTask, token)
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 {
		return StaffRecord{}, false
	}
	return d.records[best], true
}

// Len 명부 인원 수
func (d *StaffDirectory) Len() int {
	return len(d.records)
}

func tokenize(question string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(question)) {
		field = strings.Trim(field, ".,!?~()[]{}\"'")
		if len([]rune(field)) < 2 {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
