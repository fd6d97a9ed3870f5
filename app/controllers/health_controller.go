package controllers

import (
	"net/http"
	"sort"

	"github.com/hibot/backend-go/app/bootstrap"
)

// HealthController GET /health
type HealthController struct {
	BaseController
}

func (c *HealthController) Health() {
	app := bootstrap.GetApp()
	if app == nil || app.Store == nil {
		c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "starting",
		})
		return
	}

	if err := app.Store.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// StatusController GET /api/status — 저장소 통계와 상위 파일 목록
type StatusController struct {
	BaseController
}

func (c *StatusController) Get() {
	app := bootstrap.GetApp()
	if app == nil || app.Store == nil || app.Bot == nil {
		c.JSONError(http.StatusServiceUnavailable, "서비스가 아직 준비되지 않았습니다.")
		return
	}

	ctx := c.Ctx.Request.Context()
	total, err := app.Store.Count(ctx)
	if err != nil {
		c.JSONError(http.StatusInternalServerError, "저장소 통계를 조회할 수 없습니다.")
		return
	}
	counts, err := app.Store.SourceFileCounts(ctx)
	if err != nil {
		c.JSONError(http.StatusInternalServerError, "저장소 통계를 조회할 수 없습니다.")
		return
	}

	type fileStat struct {
		FileName   string `json:"file_name"`
		ChunkCount int    `json:"chunk_count"`
	}
	stats := make([]fileStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, fileStat{FileName: name, ChunkCount: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].ChunkCount != stats[j].ChunkCount {
			return stats[i].ChunkCount > stats[j].ChunkCount
		}
		return stats[i].FileName < stats[j].FileName
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"database_connected": app.Store.HealthCheck() == nil,
		"total_documents":    total,
		"top_files":          stats,
	})
}
