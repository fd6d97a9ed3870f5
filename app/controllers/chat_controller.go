package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hibot/backend-go/app/bootstrap"
	"github.com/hibot/backend-go/internal/chat"
	"github.com/hibot/backend-go/internal/config"
	apperrors "github.com/hibot/backend-go/internal/errors"
	"github.com/hibot/backend-go/internal/logger"
	"github.com/hibot/backend-go/internal/metrics"
)

var validate = validator.New()

// ChatRequest 채팅 요청 본문
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ChatController POST /api/chat
type ChatController struct {
	BaseController
}

// Post 질문 하나를 처리해 {"response": ...}를 돌려준다.
func (c *ChatController) Post() {
	var req ChatRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "요청 본문을 해석할 수 없습니다.")
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSONError(http.StatusBadRequest, "message 필드는 1~2000자여야 합니다.")
		return
	}

	app := bootstrap.GetApp()
	if app == nil || app.Bot == nil {
		c.JSONError(http.StatusServiceUnavailable, "서비스가 아직 준비되지 않았습니다.")
		return
	}

	timeout := 60 * time.Second
	if cfg := config.AppConfig; cfg != nil && cfg.Server.RequestTimeoutSecs > 0 {
		timeout = time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Ctx.Request.Context(), timeout)
	defer cancel()

	started := time.Now()
	answer, stage, err := app.Bot.Answer(ctx, req.Message)
	metrics.RetrievalDuration.Observe(time.Since(started).Seconds())
	metrics.ObserveAnswer(string(stage))

	if err != nil {
		appErr := apperrors.GetAppError(err)
		logger.Error("chat request failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
		// 타임아웃은 서비스 이용 불가로 안내한다
		if ctx.Err() == context.DeadlineExceeded {
			appErr = apperrors.NewExternalError(apperrors.ErrCodeTimeout, "request timed out").WithCause(err)
		}
		c.JSON(appErr.HTTPCode, map[string]interface{}{
			"response": chat.UserMessage(appErr),
			"error":    string(appErr.Code),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"response": answer,
	})
}
