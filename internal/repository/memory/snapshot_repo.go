package memory

import (
	"context"
	"sync"

	"crowdwatch/internal/domain/entities"
)

// SnapshotRepository is the in-memory crowd snapshot cache: one entry per
// location, overwritten on every update, rebuilt from nothing on restart.
// An RWMutex keeps the single-writer discipline the cache relies on; a read
// can never observe a half-written entry.
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*entities.CrowdSnapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		snapshots: make(map[string]*entities.CrowdSnapshot),
	}
}

// Get returns the cached snapshot for a location, or (nil, nil) if none
// exists. A copy is returned so callers cannot mutate the cached entry.
func (r *SnapshotRepository) Get(ctx context.Context, locationID string) (*entities.CrowdSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[locationID]
	if !exists {
		return nil, nil
	}
	copied := *snapshot
	return &copied, nil
}

// Put replaces the cached snapshot for the location.
func (r *SnapshotRepository) Put(ctx context.Context, snapshot *entities.CrowdSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *snapshot
	r.snapshots[snapshot.LocationID] = &copied
	return nil
}

// List returns copies of every cached snapshot, in no particular order.
func (r *SnapshotRepository) List(ctx context.Context) ([]*entities.CrowdSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*entities.CrowdSnapshot, 0, len(r.snapshots))
	for _, snapshot := range r.snapshots {
		copied := *snapshot
		snapshots = append(snapshots, &copied)
	}
	return snapshots, nil
}
