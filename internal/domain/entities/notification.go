package entities

import "time"

// NotificationType categorizes what a push notification is about.
type NotificationType string

const (
	NotificationCrowdAlert            NotificationType = "CROWD_ALERT"
	NotificationAlternativeSuggestion NotificationType = "ALTERNATIVE_SUGGESTION"
	NotificationOptimalTime           NotificationType = "OPTIMAL_TIME"
	NotificationRouteUpdate           NotificationType = "ROUTE_UPDATE"
)

// Notification is a single delivery attempt to one user. It lives in the
// pending queue until delivered or dropped for age.
type Notification struct {
	UserID     string           `json:"user_id"`
	LocationID string           `json:"location_id,omitempty"`
	Type       NotificationType `json:"notification_type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
	Sent       bool             `json:"sent"`
}

// NewNotification creates an unsent notification stamped with the given time.
func NewNotification(userID string, nType NotificationType, title, message string, createdAt time.Time) *Notification {
	return &Notification{
		UserID:    userID,
		Type:      nType,
		Title:     title,
		Message:   message,
		Timestamp: createdAt,
	}
}

// Age returns how long ago the notification was created.
func (n *Notification) Age(asOf time.Time) time.Duration {
	return asOf.Sub(n.Timestamp)
}
