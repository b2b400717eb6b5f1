package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/entries", h.listEntries)
		api.POST("/filter", h.filterHandler)
		api.GET("/entries/:id/card", h.entryCardHandler)
		api.POST("/compose", h.composeHandler)
		api.POST("/deck/render", h.deckRenderHandler)
		api.POST("/deck/image", h.deckImageHandler)
		api.GET("/qr", h.qrHandler)
	}
}
