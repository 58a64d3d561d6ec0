package http

import "github.com/gin-gonic/gin"

// Register attaches requirement routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)

	// static paths before /:id
	rg.GET("/stats", h.stats)
	rg.GET("/chart", h.chart)
	rg.GET("/export", h.export)
	rg.GET("/events", h.streamEvents)

	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.GET("/:id/history", h.history)
	rg.GET("/:id/comments", h.listComments)
	rg.POST("/:id/comments", h.addComment)
}

// RegisterStages exposes the stage enumeration.
func (h *Handler) RegisterStages(rg *gin.RouterGroup) {
	rg.GET("", h.stages)
}
