package api

import (
	"github.com/gin-gonic/gin"

	"crowdwatch/internal/api/handlers"
)

type Router struct {
	crowdHandler *handlers.CrowdHandler
	routeHandler *handlers.RouteHandler
	pushHandler  *handlers.PushHandler
	statsHandler *handlers.StatsHandler
}

func NewRouter(
	crowdHandler *handlers.CrowdHandler,
	routeHandler *handlers.RouteHandler,
	pushHandler *handlers.PushHandler,
	statsHandler *handlers.StatsHandler,
) *Router {
	return &Router{
		crowdHandler: crowdHandler,
		routeHandler: routeHandler,
		pushHandler:  pushHandler,
		statsHandler: statsHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	crowd := engine.Group("/crowd")
	{
		crowd.GET("/high-crowd-locations", r.crowdHandler.HighCrowdLocations)
		crowd.GET("/stats", r.statsHandler.Stats)
		crowd.GET("/ws", r.pushHandler.Serve)
		crowd.POST("/bulk", r.crowdHandler.BulkSnapshots)
		crowd.POST("/optimize-route", r.routeHandler.OptimizeRoute)
		crowd.POST("/subscribe", r.crowdHandler.Subscribe)
		crowd.POST("/recommended-times", r.routeHandler.RecommendedTimes)
		crowd.GET("/:locationId", r.crowdHandler.GetSnapshot)
	}
}
