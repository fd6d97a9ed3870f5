package main

import (
	"context"
	"log"
	"strconv"

	"github.com/beego/beego/v2/server/web"
	"go.uber.org/zap"

	"github.com/hibot/backend-go/app/bootstrap"
	"github.com/hibot/backend-go/app/router"
	"github.com/hibot/backend-go/internal/config"
	"github.com/hibot/backend-go/internal/di"
	"github.com/hibot/backend-go/internal/knowledge"
	"github.com/hibot/backend-go/internal/logger"
)

func main() {
	app, err := bootstrap.Init()
	if err != nil {
		log.Fatalf("failed to bootstrap application: %v", err)
	}
	defer app.Cleanup()

	// Set global app instance for controllers
	bootstrap.SetGlobalApp(app)

	cfg := config.AppConfig
	if port, err := strconv.Atoi(cfg.Server.Port); err == nil {
		web.BConfig.Listen.HTTPPort = port
	}
	web.BConfig.CopyRequestBody = true
	web.BConfig.RunMode = cfg.Server.Env

	// 감시 모드: 문서 폴더에 새 파일이 들어오면 증분 색인
	if cfg.Documents.Watch {
		err := di.Invoke(func(indexer *knowledge.Indexer) {
			watcher := knowledge.NewWatcher(indexer, cfg.Documents.SourceDir, 0, logger.GetLogger())
			go func() {
				if err := watcher.Run(context.Background()); err != nil && err != context.Canceled {
					logger.Warn("document watcher stopped", zap.Error(err))
				}
			}()
		})
		if err != nil {
			logger.Warn("document watcher not started", zap.Error(err))
		}
	}

	router.Init()
	web.Run()
}
