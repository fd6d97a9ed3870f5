package router

import (
	"github.com/beego/beego/v2/server/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hibot/backend-go/app/controllers"
	"github.com/hibot/backend-go/app/middleware"
)

// Init registers all routes. Must be called after config is loaded.
func Init() {
	web.InsertFilter("/*", web.BeforeRouter, middleware.CORSMiddleware)

	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/health", &controllers.HealthController{}, "get:Health")

	web.Router("/api/chat", &controllers.ChatController{}, "post:Post")
	web.Router("/api/faq", &controllers.FAQController{}, "get:Get;post:Post")
	web.Router("/api/status", &controllers.StatusController{}, "get:Get")

	web.Handler("/metrics", promhttp.Handler())
}
