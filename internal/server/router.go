// Package server exposes the chat and quiz services over HTTP.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(h *Handler, log *zap.Logger, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORS(corsOrigins))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	router.POST("/chat", h.postChat)
	router.GET("/topics", h.getTopics)
	router.GET("/follow-up/:user_id", h.getFollowUp)

	mcq := router.Group("/mcq")
	{
		mcq.POST("/generate", h.postMCQGenerate)
		mcq.GET("/next", h.getMCQNext)
		mcq.POST("/attempt", h.postMCQAttempt)
		mcq.GET("/analytics", h.getMCQAnalytics)
	}

	router.POST("/admin/clear-cache", h.postClearCache)

	return router
}
