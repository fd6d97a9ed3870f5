package bootstrap

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hibot/backend-go/internal/chat"
	"github.com/hibot/backend-go/internal/config"
	"github.com/hibot/backend-go/internal/di"
	"github.com/hibot/backend-go/internal/knowledge"
	"github.com/hibot/backend-go/internal/logger"
)

// App encapsulates lifecycle resources that need to be cleaned up on shutdown.
type App struct {
	Bot     *chat.Bot
	Store   *knowledge.Store
	Indexer *knowledge.Indexer

	cleanupTasks []func() error
}

// Global app instance for controllers to access
var globalApp *App

// GetApp returns the global app instance
func GetApp() *App {
	return globalApp
}

// SetGlobalApp sets the global app instance
func SetGlobalApp(app *App) {
	globalApp = app
}

// Init bootstraps configuration, logger, the chunk store and the chatbot core
// required by the Beego application.
func Init() (*App, error) {
	// Load environment variables from .env if present (non-fatal if missing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize structured logger.
	if err := logger.InitLogger(); err != nil {
		return nil, err
	}

	// Load dynamic configuration.
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}

	container := di.InitContainer()
	if err := di.RegisterProviders(container); err != nil {
		return nil, err
	}

	app := &App{}
	err := di.Invoke(func(bot *chat.Bot, store *knowledge.Store, indexer *knowledge.Indexer) {
		app.Bot = bot
		app.Store = store
		app.Indexer = indexer
	})
	if err != nil {
		return nil, err
	}

	app.cleanupTasks = append(app.cleanupTasks, app.Store.Close)
	app.cleanupTasks = append(app.cleanupTasks, func() error {
		logger.Sync()
		return nil
	})

	// 시작 시 문서 폴더의 새 문서를 색인 (실패해도 서버는 뜬다)
	cfg := config.AppConfig
	if cfg.Documents.SourceDir != "" {
		report, err := app.Indexer.IndexNewDocuments(context.Background(), cfg.Documents.SourceDir, false)
		if err != nil {
			logger.Warn("startup indexing skipped", zap.Error(err))
		} else {
			logger.Info("startup indexing finished",
				zap.Int("processed", report.Processed),
				zap.Int("skipped", report.Skipped),
				zap.Int("failed", report.Failed))
		}
	}

	logger.Info("application bootstrapped",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Path))
	return app, nil
}

// Cleanup runs registered shutdown tasks in reverse order.
func (a *App) Cleanup() {
	for i := len(a.cleanupTasks) - 1; i >= 0; i-- {
		if err := a.cleanupTasks[i](); err != nil {
			log.Printf("cleanup task failed: %v", err)
		}
	}
}
