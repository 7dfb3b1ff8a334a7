package entities

import "time"

// AlertType categorizes why an alert was raised.
type AlertType string

const (
	AlertTypeHighCrowd       AlertType = "HIGH_CROWD"
	AlertTypeLongWait        AlertType = "LONG_WAIT"
	AlertTypeCapacityReached AlertType = "CAPACITY_REACHED"
	AlertTypeCrowdIncreasing AlertType = "CROWD_INCREASING"
)

// AlertSeverity grades how urgent an alert is.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// AlertTTL is how long an alert stays valid after creation.
const AlertTTL = time.Hour

// CrowdAlert is created fresh each sweep cycle for an overcrowded location.
// After construction it is immutable except for attaching alternatives.
type CrowdAlert struct {
	ID           string                     `json:"id"`
	LocationID   string                     `json:"location_id"`
	AlertType    AlertType                  `json:"alert_type"`
	Message      string                     `json:"message"`
	Severity     AlertSeverity              `json:"severity"`
	Timestamp    time.Time                  `json:"timestamp"`
	ExpiresAt    time.Time                  `json:"expires_at"`
	Alternatives *AlternativeRecommendation `json:"alternatives,omitempty"`
}

// AttachAlternatives links a recommendation to the alert. This is the only
// mutation allowed after the alert is built.
func (a *CrowdAlert) AttachAlternatives(rec *AlternativeRecommendation) {
	a.Alternatives = rec
}

// IsExpired reports whether the alert has outlived its TTL.
func (a *CrowdAlert) IsExpired(asOf time.Time) bool {
	return asOf.After(a.ExpiresAt)
}
