package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"crowdwatch/internal/config"
	"crowdwatch/internal/domain/entities"
	"crowdwatch/internal/repository"
	"crowdwatch/pkg/utils"
)

// PushConn is one bound push channel. The concrete transport (websocket in
// production, fakes in tests) lives behind this interface so delivery logic
// never touches transport details, and a multi-instance message bus could
// replace the in-process table without changing it.
type PushConn interface {
	WriteJSON(v any) error
	Close() error
}

// NotificationFrame is the wire shape of a server push frame.
type NotificationFrame struct {
	Type         string                 `json:"type"`
	Notification *entities.Notification `json:"notification"`
}

// NotificationService binds push channels to users and delivers or queues
// alerts. Per user the state machine is unbound → bound (auth) → unbound
// (close); a new binding for the same user replaces the old one so a user
// never receives dual delivery.
type NotificationService struct {
	mu       sync.RWMutex
	channels map[string]PushConn

	queue repository.NotificationQueue
	cfg   config.NotificationConfig
	now   func() time.Time
}

func NewNotificationService(queue repository.NotificationQueue, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		channels: make(map[string]PushConn),
		queue:    queue,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Bind attaches a channel to a user. An existing binding for the same user is
// closed and replaced.
func (s *NotificationService) Bind(userID string, conn PushConn) {
	s.mu.Lock()
	previous := s.channels[userID]
	s.channels[userID] = conn
	s.mu.Unlock()

	if previous != nil {
		previous.Close()
		log.Printf("[PUSH] Replaced existing channel for user %s", userID)
	}
}

// Unbind detaches a user's channel, but only if it is still the given one —
// a stale close must not tear down a replacement binding.
func (s *NotificationService) Unbind(userID string, conn PushConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channels[userID] == conn {
		delete(s.channels, userID)
	}
}

// ConnectedCount returns the number of currently bound channels.
func (s *NotificationService) ConnectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.channels)
}

// CloseAll closes every bound channel (process shutdown).
func (s *NotificationService) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, conn := range s.channels {
		conn.Close()
		delete(s.channels, userID)
	}
}

// Send delivers the notification over the user's bound channel. When no
// channel is bound, or the transport write fails, the notification lands on
// the pending queue and Send reports false. Failure never reaches the caller
// as an error.
func (s *NotificationService) Send(ctx context.Context, userID string, n *entities.Notification) bool {
	if s.deliver(userID, n) {
		return true
	}

	n.Sent = false
	if err := s.queue.Enqueue(ctx, n); err != nil {
		log.Printf("[PUSH] Failed to queue notification for user %s: %v", userID, err)
	}
	return false
}

// deliver attempts the transport write without touching the queue.
func (s *NotificationService) deliver(userID string, n *entities.Notification) bool {
	s.mu.RLock()
	conn := s.channels[userID]
	s.mu.RUnlock()

	if conn == nil {
		return false
	}

	frame := NotificationFrame{Type: "notification", Notification: n}
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[PUSH] Delivery to user %s failed: %v", userID, err)
		return false
	}
	n.Sent = true
	return true
}

// BuildCrowdAlert classifies a snapshot into an alert. Precedence is fixed
// and first match wins: capacity reached, then long wait, then overcrowded,
// then the increasing-crowd catch-all for everything else.
func (s *NotificationService) BuildCrowdAlert(snapshot *entities.CrowdSnapshot) *entities.CrowdAlert {
	asOf := s.now()
	alert := &entities.CrowdAlert{
		ID:         utils.GenerateID(),
		LocationID: snapshot.LocationID,
		Timestamp:  asOf,
		ExpiresAt:  asOf.Add(entities.AlertTTL),
	}

	switch {
	case snapshot.OccupancyPercentage() >= 95:
		alert.AlertType = entities.AlertTypeCapacityReached
		alert.Severity = entities.SeverityCritical
		alert.Message = fmt.Sprintf("%s has reached capacity. Entry may be restricted.", snapshot.LocationName)
	case snapshot.HasLongWait():
		alert.AlertType = entities.AlertTypeLongWait
		alert.Severity = entities.SeverityHigh
		alert.Message = fmt.Sprintf("%s currently has a wait of about %d minutes.", snapshot.LocationName, snapshot.EstimatedWaitTime)
	case snapshot.IsOvercrowded():
		alert.AlertType = entities.AlertTypeHighCrowd
		alert.Severity = entities.SeverityMedium
		alert.Message = fmt.Sprintf("%s is very crowded right now.", snapshot.LocationName)
	default:
		alert.AlertType = entities.AlertTypeCrowdIncreasing
		alert.Severity = entities.SeverityLow
		alert.Message = fmt.Sprintf("%s is getting busier.", snapshot.LocationName)
	}

	return alert
}

// DrainQueue snapshots the pending queue, clears it, and retries every entry.
// Entries that fail again are re-queued only while younger than the queue max
// age; older ones are dropped silently.
func (s *NotificationService) DrainQueue(ctx context.Context) {
	pending, err := s.queue.DrainAll(ctx)
	if err != nil {
		log.Printf("[PUSH] Failed to drain queue: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	asOf := s.now()
	delivered, dropped := 0, 0
	for _, n := range pending {
		if s.deliver(n.UserID, n) {
			delivered++
			continue
		}
		if n.Age(asOf) < s.cfg.QueueMaxAge {
			if err := s.queue.Enqueue(ctx, n); err != nil {
				log.Printf("[PUSH] Failed to re-queue notification for user %s: %v", n.UserID, err)
			}
		} else {
			dropped++
		}
	}

	log.Printf("[PUSH] Queue drain: %d delivered, %d dropped of %d pending", delivered, dropped, len(pending))
}
