package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdwatch/internal/repository"
	"crowdwatch/internal/services"
)

type StatsHandler struct {
	notifications *services.NotificationService
	sweep         *services.SweepService
	subscriptions repository.SubscriptionRepository
}

func NewStatsHandler(
	notifications *services.NotificationService,
	sweep *services.SweepService,
	subscriptions repository.SubscriptionRepository,
) *StatsHandler {
	return &StatsHandler{
		notifications: notifications,
		sweep:         sweep,
		subscriptions: subscriptions,
	}
}

// Stats handles GET /crowd/stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	subscriptionCount, err := h.subscriptions.Count(c.Request.Context())
	if err != nil {
		log.Printf("[API] Subscription count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected_channels": h.notifications.ConnectedCount(),
		"sweep_active":       h.sweep.Active(),
		"subscription_count": subscriptionCount,
	})
}
