package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crowdwatch/internal/repository"
	"crowdwatch/internal/services"
)

type CrowdHandler struct {
	crowd         *services.CrowdService
	alternatives  *services.AlternativeService
	routes        *services.RouteService
	subscriptions repository.SubscriptionRepository
	searchRadius  float64
}

func NewCrowdHandler(
	crowd *services.CrowdService,
	alternatives *services.AlternativeService,
	routes *services.RouteService,
	subscriptions repository.SubscriptionRepository,
	searchRadiusMeters float64,
) *CrowdHandler {
	return &CrowdHandler{
		crowd:         crowd,
		alternatives:  alternatives,
		routes:        routes,
		subscriptions: subscriptions,
		searchRadius:  searchRadiusMeters,
	}
}

// GetSnapshot handles GET /crowd/:locationId. Overcrowded locations also get
// alternatives and an optimal visit time attached.
func (h *CrowdHandler) GetSnapshot(c *gin.Context) {
	locationID := strings.TrimSpace(c.Param("locationId"))
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location id is required"})
		return
	}

	snapshot, err := h.crowd.Get(c.Request.Context(), locationID)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		log.Printf("[API] Snapshot lookup for %s failed: %v", locationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	response := gin.H{
		"snapshot":       snapshot,
		"is_overcrowded": snapshot.IsOvercrowded(),
		"has_long_wait":  snapshot.HasLongWait(),
	}

	if snapshot.IsOvercrowded() {
		recommendation, err := h.alternatives.FindAlternatives(c.Request.Context(), locationID, h.searchRadius)
		if err != nil {
			log.Printf("[API] Alternative search for %s failed: %v", locationID, err)
		} else if recommendation != nil {
			response["alternatives"] = recommendation
		}
		if optimal := h.routes.FindOptimalVisitTime(c.Request.Context(), locationID, time.Now()); optimal != nil {
			response["optimal_time"] = optimal
		}
	}

	c.JSON(http.StatusOK, response)
}

type bulkSnapshotsRequest struct {
	LocationIDs []string `json:"location_ids" binding:"required,min=1,max=50"`
}

// BulkSnapshots handles POST /crowd/bulk.
func (h *CrowdHandler) BulkSnapshots(c *gin.Context) {
	var req bulkSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshots := h.crowd.GetBulk(c.Request.Context(), req.LocationIDs)
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

type subscribeRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	LocationID string `json:"location_id" binding:"required"`
}

// Subscribe handles POST /crowd/subscribe.
func (h *CrowdHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.subscriptions.Subscribe(c.Request.Context(), req.UserID, req.LocationID); err != nil {
		log.Printf("[API] Subscribe %s -> %s failed: %v", req.UserID, req.LocationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "subscribed",
		"user_id":     req.UserID,
		"location_id": req.LocationID,
	})
}

// HighCrowdLocations handles GET /crowd/high-crowd-locations.
func (h *CrowdHandler) HighCrowdLocations(c *gin.Context) {
	overcrowded, err := h.crowd.ListOvercrowded(c.Request.Context())
	if err != nil {
		log.Printf("[API] Overcrowded listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": overcrowded,
		"count":     len(overcrowded),
	})
}
