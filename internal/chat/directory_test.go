package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []StaffRecord {
	return []StaffRecord{
		{
			Name:       "김민수",
			Department: "총무팀",
			Position:   "대리",
			Phone:      "02-1234-5678",
			Tasks:      []string{"사무용품 구매", "주차 관리", "비품 관리"},
		},
		{
			Name:       "이서연",
			Department: "인사팀",
			Position:   "과장",
			Phone:      "02-1234-5679",
			Tasks:      []string{"채용", "연차 관리", "급여 정산"},
		},
	}
}

func TestDirectoryMatch(t *testing.T) {
	directory := NewStaffDirectory(testRoster())

	record, ok := directory.Match("사무용품 구매는 누구한테 문의하나요?")
	require.True(t, ok)
	assert.Equal(t, "김민수", record.Name)
	assert.Equal(t, "총무팀", record.Department)
}

func TestDirectoryMatchArgmax(t *testing.T) {
	directory := NewStaffDirectory(testRoster())

	// 급여와 채용 둘 다 두 번째 직원의 업무다
	record, ok := directory.Match("급여 정산이랑 채용 일정 문의")
	require.True(t, ok)
	assert.Equal(t, "이서연", record.Name)
}

func TestDirectoryMatchNoScore(t *testing.T) {
	directory := NewStaffDirectory(testRoster())

	_, ok := directory.Match("우주선 발사 일정이 궁금해요")
	assert.False(t, ok)
}

func TestDirectoryMatchShortTokensDiscarded(t *testing.T) {
	directory := NewStaffDirectory([]StaffRecord{
		{Name: "박지훈", Tasks: []string{"a b c 문서"}},
	})

	// 2글자 미만 토큰만으로는 매칭되지 않는다
	_, ok := directory.Match("a b c")
	assert.False(t, ok)
}

func TestDirectoryTiesFirstWins(t *testing.T) {
	directory := NewStaffDirectory([]StaffRecord{
		{Name: "첫째", Tasks: []string{"출장 정산"}},
		{Name: "둘째", Tasks: []string{"출장 정산"}},
	})

	record, ok := directory.Match("출장 정산 문의")
	require.True(t, ok)
	assert.Equal(t, "첫째", record.Name)
}

func TestDirectoryEmptyRoster(t *testing.T) {
	directory := NewStaffDirectory(nil)

	_, ok := directory.Match("연차 문의")
	assert.False(t, ok)
}
