package middleware

import (
	"github.com/beego/beego/v2/server/web/context"
)

// 로컬 프런트엔드 개발 서버 출처
var allowedOrigins = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
	"http://127.0.0.1:3000": {},
	"http://127.0.0.1:5173": {},
}

// CORSMiddleware 채팅 웹 UI를 위한 CORS 처리
func CORSMiddleware(ctx *context.Context) {
	origin := ctx.Input.Header("Origin")
	if origin == "" {
		return
	}
	if _, ok := allowedOrigins[origin]; !ok {
		return
	}

	ctx.Output.Header("Access-Control-Allow-Origin", origin)
	ctx.Output.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Output.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
	ctx.Output.Header("Access-Control-Max-Age", "3600")

	// OPTIONS 사전 요청은 여기서 끝낸다
	if ctx.Input.Method() == "OPTIONS" {
		ctx.Output.SetStatus(204)
		_ = ctx.Output.Body([]byte(""))
	}
}
