package chat

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hibot/backend-go/internal/knowledge"
)

// maxPromptChunks 프롬프트에 넣는 문서 수 상한
const maxPromptChunks = 3

// maxChunkPreview 문서당 프롬프트에 넣는 최대 글자(룬) 수
const maxChunkPreview = 500

// BuildPrompt 검색된 청크와 질문 원문으로 생성 프롬프트를 조립한다.
// 동의어 치환은 검색 질의에만 적용되므로 여기에는 항상 사용자가 입력한
// 원문이 들어간다.
func BuildPrompt(question string, chunks []knowledge.ScoredChunk) string {
	var context strings.Builder
	for i, chunk := range chunks {
		if i >= maxPromptChunks {
			break
		}
		filename := chunk.SourceFile()
		if filename == "" {
			filename = "알 수 없는 파일"
		}
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(fmt.Sprintf("[문서 %d: %s (유사도 %.2f)]\n%s",
			i+1, filename, chunk.Similarity, previewText(chunk.Text)))
	}

	return fmt.Sprintf(`다음은 조직 내부 규정 및 업무 관련 문서들입니다. 사용자의 질문에 대해 이 문서들을 참고하여 정확하고 도움이 되는 답변을 작성해주세요.

=== 관련 문서 내용 ===
%s

=== 사용자 질문 ===
%s

=== 답변 가이드라인 ===
1. 제공된 문서 내용을 바탕으로 정확한 정보를 제공하세요
2. 문서에서 찾을 수 없는 정보는 추측하지 마세요
3. 한국어로 친근하고 전문적인 톤으로 답변하세요
4. 필요시 해당 규정이나 지침의 제목을 언급하세요
5. 추가 문의가 필요한 경우 담당 부서 확인을 안내하세요

답변:`, context.String(), question)
}

// FormatCitation 최상위 청크의 원본 파일명(확장자 제거)으로 참조 문서
// 표기를 만든다. 청크가 없으면 빈 문자열.
func FormatCitation(chunks []knowledge.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	filename := chunks[0].SourceFile()
	if filename == "" {
		return ""
	}
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	return fmt.Sprintf("\n\n**참조 문서:** %s", title)
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxChunkPreview {
		return text
	}
	return string(runes[:maxChunkPreview])
}
