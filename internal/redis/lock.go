package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore provides per-ride locks so seat confirmation is serialized.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireRideLock attempts to acquire a lock for a ride. Returns false when
// another confirmation already holds it.
func (s *LockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:ride:%s", rideID)
	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleaseRideLock releases the lock for a ride.
func (s *LockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	key := fmt.Sprintf("lock:ride:%s", rideID)
	return s.client.Del(ctx, key).Err()
}
