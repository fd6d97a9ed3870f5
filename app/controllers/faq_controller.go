package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/hibot/backend-go/app/bootstrap"
)

// FAQRequest 번호로 FAQ를 조회하는 요청 본문
type FAQRequest struct {
	FAQNumber int `json:"faq_number"`
}

// FAQController GET/POST /api/faq
type FAQController struct {
	BaseController
}

// Get 등록된 FAQ 전체 목록
func (c *FAQController) Get() {
	app := bootstrap.GetApp()
	if app == nil || app.Bot == nil {
		c.JSONError(http.StatusServiceUnavailable, "서비스가 아직 준비되지 않았습니다.")
		return
	}

	entries := app.Bot.FAQ().Entries()
	items := make([]map[string]interface{}, 0, len(entries))
	for i, entry := range entries {
		items = append(items, map[string]interface{}{
			"number":  i + 1,
			"keyword": entry.Keyword,
			"answer":  entry.Answer,
		})
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"faqs": items,
	})
}

// Post 번호로 고정 답변 조회. 범위를 벗어나면 안내 문구를 준다.
func (c *FAQController) Post() {
	app := bootstrap.GetApp()
	if app == nil || app.Bot == nil {
		c.JSONError(http.StatusServiceUnavailable, "서비스가 아직 준비되지 않았습니다.")
		return
	}

	var req FAQRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "요청 본문을 해석할 수 없습니다.")
		return
	}

	answer, err := app.Bot.FAQ().ByNumber(req.FAQNumber)
	if err != nil {
		c.JSON(http.StatusOK, map[string]interface{}{
			"response": "해당 번호의 FAQ가 없습니다. 1번부터 등록된 번호를 확인해주세요.",
		})
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"response": answer,
	})
}
