package knowledge

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher 소스 디렉터리를 감시하다가 새 문서가 들어오면 증분 인덱싱을 돌린다.
// 복사 중인 파일을 건드리지 않도록 이벤트 후 일정 시간 조용해질 때까지 기다린다.
type Watcher struct {
	indexer   *Indexer
	sourceDir string
	debounce  time.Duration
	logger    *zap.Logger
}

// NewWatcher 감시기 생성. debounce가 0이면 2초를 쓴다.
func NewWatcher(indexer *Indexer, sourceDir string, debounce time.Duration, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		indexer:   indexer,
		sourceDir: sourceDir,
		debounce:  debounce,
		logger:    logger,
	}
}

// Run 컨텍스트가 취소될 때까지 디렉터리를 감시한다.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.sourceDir); err != nil {
		return err
	}
	w.logger.Info("watching document source", zap.String("dir", w.sourceDir))

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.indexer.accepts(event.Name) {
				continue
			}
			w.logger.Debug("document change detected", zap.String("file", event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timerC:
			timer = nil
			timerC = nil
			report, err := w.indexer.IndexNewDocuments(ctx, w.sourceDir, false)
			if err != nil {
				w.logger.Error("incremental indexing failed", zap.Error(err))
				continue
			}
			if report.Processed > 0 || report.Failed > 0 {
				w.logger.Info("incremental indexing done",
					zap.Int("processed", report.Processed),
					zap.Int("failed", report.Failed))
			}
		}
	}
}
