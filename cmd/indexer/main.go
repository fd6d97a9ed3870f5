package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hibot/backend-go/internal/config"
	"github.com/hibot/backend-go/internal/di"
	"github.com/hibot/backend-go/internal/knowledge"
	"github.com/hibot/backend-go/internal/logger"
	"github.com/hibot/backend-go/internal/metrics"
)

// 문서 폴더를 청크 저장소로 색인하는 배치 도구.
// 서버와 동시에 돌리지 않는 것을 전제로 한다.
func main() {
	sourceDir := flag.String("source", "", "document source directory (default: config)")
	force := flag.Bool("force", false, "clear the store and reindex everything")
	watch := flag.Bool("watch", false, "keep running and index new files as they appear")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	if err := logger.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	if err := config.LoadConfig(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dir := *sourceDir
	if dir == "" {
		dir = config.AppConfig.Documents.SourceDir
	}

	container := di.InitContainer()
	if err := di.RegisterProviders(container); err != nil {
		logger.Fatal("failed to register providers", zap.Error(err))
	}

	failed := 0
	err := di.Invoke(func(indexer *knowledge.Indexer, store *knowledge.Store) {
		defer store.Close()
		ctx := context.Background()

		report, err := indexer.IndexNewDocuments(ctx, dir, *force)
		metrics.ObserveIndexRun(reportCounts(report, err))
		if err != nil {
			logger.Fatal("indexing failed", zap.Error(err))
		}

		fmt.Printf("색인 완료: 처리 %d건, 건너뜀 %d건, 실패 %d건\n",
			report.Processed, report.Skipped, report.Failed)
		for _, name := range report.FailedFiles {
			fmt.Printf("  실패: %s\n", name)
		}
		failed = report.Failed

		if *watch {
			watcher := knowledge.NewWatcher(indexer, dir, 0, logger.GetLogger())
			if err := watcher.Run(ctx); err != nil {
				logger.Fatal("watcher stopped", zap.Error(err))
			}
		}
	})
	if err != nil {
		logger.Fatal("indexer wiring failed", zap.Error(err))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func reportCounts(report *knowledge.IndexReport, err error) (int, int, int, error) {
	if report == nil {
		return 0, 0, 0, err
	}
	return report.Processed, report.Skipped, report.Failed, err
}
