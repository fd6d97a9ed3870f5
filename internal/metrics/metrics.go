package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 답변 단계별 카운터와 검색 지연 히스토그램.
// /metrics 엔드포인트로 노출된다.
var (
	AnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hibot",
		Name:      "answers_total",
		Help:      "Chat answers by terminal stage (faq, rag, referral, no_match, error).",
	}, []string{"stage"})

	RetrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hibot",
		Name:      "retrieval_duration_seconds",
		Help:      "End-to-end latency of a chat request (embedding, retrieval, generation).",
		Buckets:   prometheus.DefBuckets,
	})

	IndexRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hibot",
		Name:      "index_runs_total",
		Help:      "Indexing runs by result (ok, failed).",
	}, []string{"result"})

	IndexedFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hibot",
		Name:      "indexed_files_total",
		Help:      "Files seen by the indexer by outcome (processed, skipped, failed).",
	}, []string{"outcome"})
)

// ObserveAnswer 단계별 답변 카운터 증가
func ObserveAnswer(stage string) {
	AnswersTotal.WithLabelValues(stage).Inc()
}

// ObserveIndexRun 인덱싱 실행 결과 집계
func ObserveIndexRun(processed, skipped, failed int, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	IndexRunsTotal.WithLabelValues(result).Inc()
	IndexedFilesTotal.WithLabelValues("processed").Add(float64(processed))
	IndexedFilesTotal.WithLabelValues("skipped").Add(float64(skipped))
	IndexedFilesTotal.WithLabelValues("failed").Add(float64(failed))
}
