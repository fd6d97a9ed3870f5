package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/hibot/backend-go/internal/errors"
	"github.com/hibot/backend-go/internal/knowledge"
)

// Stage 질문 하나가 어느 단계에서 끝났는지
type Stage string

const (
	StageFAQ      Stage = "faq"
	StageRAG      Stage = "rag"
	StageReferral Stage = "referral"
	StageNoMatch  Stage = "no_match"
	StageError    Stage = "error"
)

// noMatchMessage 검색도 담당자 매칭도 실패했을 때의 기본 응답
const noMatchMessage = "죄송합니다. 관련 문서를 찾을 수 없습니다. 다른 키워드로 검색해보시거나 담당 부서에 직접 문의하시기 바랍니다."

// ChunkRetriever 봇이 필요로 하는 검색 동작
type ChunkRetriever interface {
	Retrieve(ctx context.Context, queryEmbedding []float32, topK int, minSimilarity float64) ([]knowledge.ScoredChunk, error)
}

// Bot 질문 하나를 단계별로 라우팅한다:
// 고정 FAQ → 동의어 표준화 → 벡터 검색 → 담당자 안내 폴백 → 답변 생성.
// 첫 번째로 성립한 단계에서 끝난다.
type Bot struct {
	faq           *FAQTable
	synonyms      *SynonymMap
	directory     *StaffDirectory
	embedder      knowledge.Embedder
	retriever     ChunkRetriever
	generator     Generator
	topK          int
	minSimilarity float64
	logger        *zap.Logger
}

// NewBot 봇 생성
func NewBot(faq *FAQTable, synonyms *SynonymMap, directory *StaffDirectory, embedder knowledge.Embedder, retriever ChunkRetriever, generator Generator, topK int, minSimilarity float64, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		faq:           faq,
		synonyms:      synonyms,
		directory:     directory,
		embedder:      embedder,
		retriever:     retriever,
		generator:     generator,
		topK:          topK,
		minSimilarity: minSimilarity,
		logger:        logger,
	}
}

// FAQ 고정 FAQ 테이블 (번호 조회 엔드포인트용)
func (b *Bot) FAQ() *FAQTable {
	return b.faq
}

// Answer 질문에 대한 사용자용 응답을 만든다. 반환된 오류는 이미 분류된
// AppError이며, 호출자는 UserMessage로 사용자용 문구를 얻을 수 있다.
func (b *Bot) Answer(ctx context.Context, question string) (string, Stage, error) {
	// 고정 FAQ: 검색과 생성을 전혀 건드리지 않는다
	if answer, ok := b.faq.Match(question); ok {
		b.logger.Info("faq answer", zap.String("question", question))
		return answer, StageFAQ, nil
	}

	// 동의어 표준화는 검색 질의에만 적용된다. 프롬프트와 응답에 보이는
	// 질문은 언제나 사용자가 입력한 원문이다.
	searchText := question
	if canonical, ok := b.synonyms.Canonicalize(question); ok {
		b.logger.Debug("query canonicalized",
			zap.String("question", question),
			zap.String("canonical", canonical))
		searchText = canonical
	}

	queryEmbedding, err := b.embedder.Embed(ctx, searchText)
	if err != nil {
		return "", StageError, err
	}

	chunks, err := b.retriever.Retrieve(ctx, queryEmbedding, b.topK, b.minSimilarity)
	if err != nil {
		return "", StageError, err
	}

	if len(chunks) == 0 {
		if record, ok := b.directory.Match(question); ok {
			b.logger.Info("directory referral",
				zap.String("question", question),
				zap.String("staff", record.Name))
			return referralMessage(record), StageReferral, nil
		}
		b.logger.Info("no retrieval hit", zap.String("question", question))
		return noMatchMessage, StageNoMatch, nil
	}

	prompt := BuildPrompt(question, chunks)
	answer, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		return "", StageError, err
	}

	b.logger.Info("rag answer",
		zap.String("question", question),
		zap.Int("chunks", len(chunks)),
		zap.Float64("top_similarity", chunks[0].Similarity))
	return answer + FormatCitation(chunks), StageRAG, nil
}

// referralMessage 담당자 안내 문구
func referralMessage(record StaffRecord) string {
	return fmt.Sprintf(
		"문서에서 관련 내용을 찾지 못했습니다. 해당 업무는 %s %s %s(☎ %s)에게 문의하시기 바랍니다.",
		record.Department, record.Name, record.Position, record.Phone)
}

// UserMessage 분류된 오류 코드를 사용자용 한국어 문구로 바꾼다.
func UserMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeGenerationQuotaExceeded:
		return "죄송합니다. AI 응답 생성 한도를 초과했습니다. 잠시 후 다시 시도해주세요."
	case apperrors.ErrCodeGenerationPermissionDenied:
		return "죄송합니다. AI 응답 생성 서비스 인증에 실패했습니다. 시스템 관리자에게 문의하세요."
	case apperrors.ErrCodeGenerationFailed:
		return "죄송합니다. AI 응답 생성 서비스가 현재 이용 불가능합니다. 시스템 관리자에게 문의하세요."
	case apperrors.ErrCodeEmbeddingFailed:
		return "죄송합니다. 질문 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	case apperrors.ErrCodeStoreUnavailable:
		return "죄송합니다. 문서 저장소에 접근할 수 없습니다. 시스템 관리자에게 문의하세요."
	case apperrors.ErrCodeTimeout:
		return "죄송합니다. 응답 생성 시간이 초과되었습니다. 잠시 후 다시 시도해주세요."
	default:
		return "죄송합니다. 응답 생성 중 오류가 발생했습니다."
	}
}
