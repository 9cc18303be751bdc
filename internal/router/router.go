package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/investlog/internal/config"
	"github.com/investlog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，用于访客身份与点赞去重
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("investlog_session", store))

	// SPA 前端单独部署，需要放行跨域请求
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	// 静态内容：文章图片与 index.md 同目录存放
	r.Static("/contents", cfg.ContentDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/rss.xml", api.RSS)
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/blog-posts", api.ListPosts)
		apiGroup.GET("/blog-posts/:slug", api.GetPost)
		apiGroup.GET("/blog-posts/:slug/related", api.GetRelated)
		apiGroup.POST("/blog-posts/:slug/like", api.LikePost)
		apiGroup.POST("/blog-posts/:slug/unlike", api.UnlikePost)

		apiGroup.GET("/categories", api.GetCategories)
		apiGroup.GET("/series", api.GetSeries)
		apiGroup.GET("/tags", api.GetTags)

		apiGroup.POST("/admin/reimport", api.Reimport)
	}

	return r
}
