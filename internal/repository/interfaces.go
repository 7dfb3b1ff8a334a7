package repository

import (
	"context"

	"crowdwatch/internal/domain/entities"
)

// SnapshotRepository holds at most one crowd snapshot per location. Reads of
// absent locations return (nil, nil); staleness is judged by callers.
type SnapshotRepository interface {
	Get(ctx context.Context, locationID string) (*entities.CrowdSnapshot, error)
	Put(ctx context.Context, snapshot *entities.CrowdSnapshot) error
	List(ctx context.Context) ([]*entities.CrowdSnapshot, error)
}

// CatalogRepository exposes the immutable location catalog.
type CatalogRepository interface {
	GetProfile(ctx context.Context, locationID string) (*entities.LocationProfile, error)
	ListProfiles(ctx context.Context) ([]*entities.LocationProfile, error)
}

// SubscriptionRepository tracks which users want alerts for which locations.
type SubscriptionRepository interface {
	Subscribe(ctx context.Context, userID, locationID string) error
	Unsubscribe(ctx context.Context, userID, locationID string) error
	SubscribersOf(ctx context.Context, locationID string) ([]string, error)
	LocationsOf(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// NotificationQueue buffers notifications that could not be delivered.
type NotificationQueue interface {
	Enqueue(ctx context.Context, n *entities.Notification) error
	// DrainAll atomically removes and returns every pending notification.
	DrainAll(ctx context.Context) ([]*entities.Notification, error)
	Len(ctx context.Context) (int, error)
}
