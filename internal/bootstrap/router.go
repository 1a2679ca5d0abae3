package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	httpapi "github.com/mauro-rocha/portfolio-backend/internal/api/http"
	"github.com/mauro-rocha/portfolio-backend/internal/api/http/admin"
	"github.com/mauro-rocha/portfolio-backend/internal/api/http/authapi"
	"github.com/mauro-rocha/portfolio-backend/internal/api/http/chat"
	"github.com/mauro-rocha/portfolio-backend/internal/api/http/middleware"
	"github.com/mauro-rocha/portfolio-backend/internal/api/http/site"
	"github.com/mauro-rocha/portfolio-backend/internal/assistant"
	"github.com/mauro-rocha/portfolio-backend/internal/auth"
	"github.com/mauro-rocha/portfolio-backend/internal/cache"
	"github.com/mauro-rocha/portfolio-backend/internal/sitedata"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	AllowedOrigins  []string
	StoreConfigured bool

	Data      *sitedata.Data
	Session   *auth.Session
	Assistant *assistant.Assistant
	Cache     *cache.Cache
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) == 1 && dep.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.StoreConfigured, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	site.New(dep.Data).Register(api)

	authGroup := api.Group("/auth")
	loginLimit := middleware.RateLimitMiddleware(rate.Every(2*time.Second), 5)
	authapi.New(dep.Session).Register(authGroup, loginLimit)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireSession(dep.Session))
	admin.New(dep.Data).Register(adminGroup)

	chatLimit := middleware.RateLimitMiddleware(rate.Every(time.Second), 3)
	chat.New(dep.Assistant).Register(api, chatLimit)

	return r
}
