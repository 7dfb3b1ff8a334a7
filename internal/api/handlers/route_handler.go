package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crowdwatch/internal/domain/entities"
	"crowdwatch/internal/services"
)

type RouteHandler struct {
	routes *services.RouteService
}

func NewRouteHandler(routes *services.RouteService) *RouteHandler {
	return &RouteHandler{routes: routes}
}

type routePointRequest struct {
	LocationID               string               `json:"location_id" binding:"required"`
	Coordinates              entities.Coordinates `json:"coordinates"`
	EstimatedArrivalTime     time.Time            `json:"estimated_arrival_time" binding:"required"`
	EstimatedDurationMinutes int                  `json:"estimated_duration_minutes" binding:"gte=0"`
}

type optimizeRouteRequest struct {
	UserID string              `json:"user_id" binding:"required"`
	Route  []routePointRequest `json:"route" binding:"required,min=1,max=20,dive"`
}

// OptimizeRoute handles POST /crowd/optimize-route.
func (h *RouteHandler) OptimizeRoute(c *gin.Context) {
	var req optimizeRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := make([]entities.RoutePoint, len(req.Route))
	for i, p := range req.Route {
		route[i] = entities.RoutePoint{
			LocationID:               p.LocationID,
			Coordinates:              p.Coordinates,
			EstimatedArrivalTime:     p.EstimatedArrivalTime,
			EstimatedDurationMinutes: p.EstimatedDurationMinutes,
		}
	}

	optimization, err := h.routes.Optimize(c.Request.Context(), req.UserID, route)
	if err != nil {
		log.Printf("[API] Route optimization for user %s failed: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"optimization":     optimization,
		"route_efficiency": h.routes.RouteEfficiency(c.Request.Context(), optimization.OptimizedRoute),
	})
}

type recommendedTimesRequest struct {
	LocationIDs []string `json:"location_ids" binding:"required,min=1,max=50"`
}

// RecommendedTimes handles POST /crowd/recommended-times.
func (h *RouteHandler) RecommendedTimes(c *gin.Context) {
	var req recommendedTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommended_times": h.routes.RecommendedDepartureTimes(c.Request.Context(), req.LocationIDs),
	})
}
