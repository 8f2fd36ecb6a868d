package http

import (
	"github.com/gin-gonic/gin"

	"wardrobe-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Every route except the taxonomy requires Auth; AI routes are rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("/taxonomy", h.Taxonomy)

	items := rg.Group("/items", mw.Auth())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.POST("/classify", h.ClassifyItems)
		items.GET("/:id", h.DetailItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}

	sets := rg.Group("/sets", mw.Auth())
	{
		sets.POST("", h.CreateSet)
		sets.GET("", h.ListSets)
		sets.GET("/:id", h.DetailSet)
		sets.DELETE("/:id", h.DeleteSet)
	}

	rg.POST("/resolve", mw.Auth(), h.Resolve)

	ai := rg.Group("", mw.Auth(), mw.RateLimit())
	{
		ai.POST("/outfits/suggest", h.SuggestOutfits)
		ai.POST("/vacations/plan", h.PlanVacation)
		ai.POST("/gaps/analyze", h.AnalyzeGaps)
	}
}
