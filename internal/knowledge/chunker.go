package knowledge

import (
	"regexp"
	"strings"
)

// SentenceChunker 문장 경계 기준으로 텍스트를 나누고 연속된 N개 문장을
// 하나의 청크로 묶는다(겹침 없음, 마지막 창은 N개 미만일 수 있음).
type SentenceChunker struct {
	sentencesPerChunk int
	splitter          *regexp.Regexp
}

// NewSentenceChunker 문장 분할기 생성 (기본 5문장)
func NewSentenceChunker(sentencesPerChunk int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		// 종결 부호(. ! ?)까지를 한 문장으로 본다. "합니다." "하나요?" 같은
		// 한국어 종결형도 모두 종결 부호로 끝나므로 같은 규칙으로 잘린다.
		splitter: regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`),
	}
}

// Split chunks text into windows of sentences. Empty or whitespace-only text
// yields no chunks.
func (c *SentenceChunker) Split(text string) []string {
	sentences := c.splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(sentences); start += c.sentencesPerChunk {
		end := start + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[start:end], " "))
	}
	return chunks
}

// splitSentences 줄 단위로 먼저 자른 뒤 각 줄을 종결 부호 기준으로 나눈다.
// HWPX 추출 결과는 문단/표 행이 개행으로 구분되므로 개행 자체도 경계다.
func (c *SentenceChunker) splitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, sentence := range c.splitter.FindAllString(line, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
		}
	}
	return sentences
}
