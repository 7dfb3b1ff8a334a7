package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"crowdwatch/internal/domain/entities"
)

// fakeConn records delivered frames and can be told to fail writes.
type fakeConn struct {
	frames     []any
	failWrites bool
	closed     bool
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	f.frames = append(f.frames, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestNotificationService_SendDeliversWhenBound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conn := &fakeConn{}
	env.notifications.Bind("alice", conn)

	n := entities.NewNotification("alice", entities.NotificationCrowdAlert, "title", "message", testClock)
	if !env.notifications.Send(ctx, "alice", n) {
		t.Fatal("Expected delivery over the bound channel")
	}
	if !n.Sent {
		t.Error("Delivered notification should be marked sent")
	}
	if len(conn.frames) != 1 {
		t.Fatalf("Expected 1 frame on the channel, got %d", len(conn.frames))
	}

	frame, ok := conn.frames[0].(NotificationFrame)
	if !ok {
		t.Fatalf("Unexpected frame type %T", conn.frames[0])
	}
	if frame.Type != "notification" || frame.Notification != n {
		t.Errorf("Unexpected frame contents: %+v", frame)
	}

	if pending, _ := env.queue.Len(ctx); pending != 0 {
		t.Errorf("Nothing should be queued after delivery, got %d", pending)
	}
}

func TestNotificationService_SendQueuesWhenUnbound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	n := entities.NewNotification("offline-user", entities.NotificationCrowdAlert, "title", "message", testClock)
	if env.notifications.Send(ctx, "offline-user", n) {
		t.Fatal("Send must report false with no bound channel")
	}
	if n.Sent {
		t.Error("Queued notification must stay unsent")
	}
	if pending, _ := env.queue.Len(ctx); pending != 1 {
		t.Errorf("Expected 1 queued notification, got %d", pending)
	}
}

func TestNotificationService_SendQueuesOnWriteFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.notifications.Bind("alice", &fakeConn{failWrites: true})

	n := entities.NewNotification("alice", entities.NotificationCrowdAlert, "title", "message", testClock)
	if env.notifications.Send(ctx, "alice", n) {
		t.Fatal("Send must report false when the transport write fails")
	}
	if pending, _ := env.queue.Len(ctx); pending != 1 {
		t.Errorf("Expected the failed notification queued, got %d pending", pending)
	}
}

func TestNotificationService_BindReplacesExisting(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := &fakeConn{}
	second := &fakeConn{}
	env.notifications.Bind("alice", first)
	env.notifications.Bind("alice", second)

	if !first.closed {
		t.Error("Replaced channel should be closed")
	}
	if env.notifications.ConnectedCount() != 1 {
		t.Errorf("Expected 1 bound channel, got %d", env.notifications.ConnectedCount())
	}

	n := entities.NewNotification("alice", entities.NotificationCrowdAlert, "title", "message", testClock)
	env.notifications.Send(ctx, "alice", n)
	if len(second.frames) != 1 || len(first.frames) != 0 {
		t.Error("Delivery should go to the replacement channel only")
	}
}

func TestNotificationService_UnbindIgnoresStaleConn(t *testing.T) {
	env := newTestEnv()

	first := &fakeConn{}
	second := &fakeConn{}
	env.notifications.Bind("alice", first)
	env.notifications.Bind("alice", second)

	// The first connection's teardown races the replacement; it must not
	// remove the new binding.
	env.notifications.Unbind("alice", first)
	if env.notifications.ConnectedCount() != 1 {
		t.Errorf("Stale unbind removed the replacement, count = %d", env.notifications.ConnectedCount())
	}

	env.notifications.Unbind("alice", second)
	if env.notifications.ConnectedCount() != 0 {
		t.Errorf("Expected 0 bound channels, got %d", env.notifications.ConnectedCount())
	}
}

func TestNotificationService_CloseAll(t *testing.T) {
	env := newTestEnv()

	first := &fakeConn{}
	second := &fakeConn{}
	env.notifications.Bind("alice", first)
	env.notifications.Bind("bob", second)

	env.notifications.CloseAll()
	if !first.closed || !second.closed {
		t.Error("CloseAll should close every bound channel")
	}
	if env.notifications.ConnectedCount() != 0 {
		t.Errorf("Expected 0 bound channels, got %d", env.notifications.ConnectedCount())
	}
}

func TestNotificationService_DrainQueue(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	fresh := entities.NewNotification("alice", entities.NotificationCrowdAlert, "fresh", "message", testClock.Add(-10*time.Minute))
	aged := entities.NewNotification("alice", entities.NotificationCrowdAlert, "aged", "message", testClock.Add(-31*time.Minute))
	env.queue.Enqueue(ctx, fresh)
	env.queue.Enqueue(ctx, aged)

	// No channel bound: the fresh one is re-queued, the aged one dropped.
	env.notifications.DrainQueue(ctx)
	if pending, _ := env.queue.Len(ctx); pending != 1 {
		t.Fatalf("Expected 1 re-queued notification, got %d", pending)
	}

	// Once a channel is bound the retry delivers and empties the queue.
	conn := &fakeConn{}
	env.notifications.Bind("alice", conn)
	env.notifications.DrainQueue(ctx)

	if pending, _ := env.queue.Len(ctx); pending != 0 {
		t.Errorf("Expected empty queue after delivery, got %d", pending)
	}
	if len(conn.frames) != 1 {
		t.Fatalf("Expected 1 delivered frame, got %d", len(conn.frames))
	}
	if !fresh.Sent {
		t.Error("Re-delivered notification should be marked sent")
	}
	if aged.Sent {
		t.Error("Dropped notification must never be marked sent")
	}
}

func TestNotificationService_BuildCrowdAlert(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name             string
		occupancy        int
		waitMinutes      int
		expectedType     entities.AlertType
		expectedSeverity entities.AlertSeverity
	}{
		{"Capacity reached beats long wait", 950, 45, entities.AlertTypeCapacityReached, entities.SeverityCritical},
		{"Long wait beats high crowd", 800, 45, entities.AlertTypeLongWait, entities.SeverityHigh},
		{"High crowd", 750, 10, entities.AlertTypeHighCrowd, entities.SeverityMedium},
		{"Catch-all for everything else", 200, 5, entities.AlertTypeCrowdIncreasing, entities.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &entities.CrowdSnapshot{
				LocationID:        "big-park",
				LocationName:      "Big Adventure Park",
				CrowdLevel:        entities.ClassifyOccupancy(tt.occupancy, 1000),
				CurrentOccupancy:  tt.occupancy,
				Capacity:          1000,
				EstimatedWaitTime: tt.waitMinutes,
			}

			alert := env.notifications.BuildCrowdAlert(snapshot)
			if alert.AlertType != tt.expectedType {
				t.Errorf("AlertType = %s, expected %s", alert.AlertType, tt.expectedType)
			}
			if alert.Severity != tt.expectedSeverity {
				t.Errorf("Severity = %s, expected %s", alert.Severity, tt.expectedSeverity)
			}
			if alert.ID == "" {
				t.Error("Alert should carry a generated id")
			}
			if alert.Message == "" {
				t.Error("Alert should carry a message")
			}
			if !alert.ExpiresAt.Equal(alert.Timestamp.Add(entities.AlertTTL)) {
				t.Errorf("ExpiresAt = %v, expected timestamp + TTL", alert.ExpiresAt)
			}
		})
	}
}
