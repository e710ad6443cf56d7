package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectview/internal/app/http/handler"
	"projectview/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	ws := r.Group("/v1/workspaces/:workspace")

	ws.GET("/projects", h.ProjectsList)

	ws.GET("/annotation-queues/:id", h.AnnotationQueueGet)
	ws.GET("/annotation-queues/:id/items", h.AnnotationQueueItems)

	ws.GET("/preferences/:key", h.PreferenceGet)
	ws.PUT("/preferences/:key", h.PreferencePut)
	ws.DELETE("/preferences/:key", h.PreferenceDelete)

	return r
}
