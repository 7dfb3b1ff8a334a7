package memory

import (
	"context"
	"sync"
)

// SubscriptionRepository tracks user↔location interest with two indices:
//   - byLocation: locationID → set of userIDs (sweep fan-out)
//   - byUser: userID → set of locationIDs (per-user listing)
//
// Both indices are updated together under one lock so they never disagree.
type SubscriptionRepository struct {
	mu         sync.RWMutex
	byLocation map[string]map[string]struct{}
	byUser     map[string]map[string]struct{}
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		byLocation: make(map[string]map[string]struct{}),
		byUser:     make(map[string]map[string]struct{}),
	}
}

// Subscribe registers interest. Subscribing twice is a no-op.
func (r *SubscriptionRepository) Subscribe(ctx context.Context, userID, locationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLocation[locationID]; !exists {
		r.byLocation[locationID] = make(map[string]struct{})
	}
	r.byLocation[locationID][userID] = struct{}{}

	if _, exists := r.byUser[userID]; !exists {
		r.byUser[userID] = make(map[string]struct{})
	}
	r.byUser[userID][locationID] = struct{}{}

	return nil
}

// Unsubscribe removes interest, cleaning up empty index cells.
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, userID, locationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if users, exists := r.byLocation[locationID]; exists {
		delete(users, userID)
		if len(users) == 0 {
			delete(r.byLocation, locationID)
		}
	}
	if locations, exists := r.byUser[userID]; exists {
		delete(locations, locationID)
		if len(locations) == 0 {
			delete(r.byUser, userID)
		}
	}
	return nil
}

// SubscribersOf returns every user subscribed to the location.
func (r *SubscriptionRepository) SubscribersOf(ctx context.Context, locationID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.byLocation[locationID]))
	for userID := range r.byLocation[locationID] {
		users = append(users, userID)
	}
	return users, nil
}

// LocationsOf returns every location the user is subscribed to.
func (r *SubscriptionRepository) LocationsOf(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]string, 0, len(r.byUser[userID]))
	for locationID := range r.byUser[userID] {
		locations = append(locations, locationID)
	}
	return locations, nil
}

// Count returns the total number of user↔location pairs.
func (r *SubscriptionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, users := range r.byLocation {
		count += len(users)
	}
	return count, nil
}
