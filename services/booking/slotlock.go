package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotLocker holds a short-lived advisory lock on a time slot for the
// duration of a booking transaction. It closes the check-then-act race
// between the conflict check and booking persistence: two concurrent
// requests for the same slot cannot both pass.
type SlotLocker interface {
	// Acquire takes the lock for the slot containing at. It returns a release
	// function and whether the lock was obtained; a held lock means another
	// booking attempt for the slot is in flight.
	Acquire(ctx context.Context, at time.Time) (release func(), acquired bool, err error)
}

// RedisSlotLocker implements SlotLocker with SETNX and a TTL safety net so a
// crashed process cannot hold a slot forever.
type RedisSlotLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSlotLocker creates a slot locker with a 2-minute TTL, comfortably
// above the combined upstream call timeouts of one transaction.
func NewRedisSlotLocker(client *redis.Client) *RedisSlotLocker {
	return &RedisSlotLocker{Client: client, TTL: 2 * time.Minute}
}

func slotKey(at time.Time) string {
	return "slotlock:" + at.UTC().Truncate(ConflictWindow).Format(time.RFC3339)
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, at time.Time) (func(), bool, error) {
	key := slotKey(at)
	ok, err := l.Client.SetNX(ctx, key, "1", l.TTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire slot lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		l.Client.Del(context.Background(), key)
	}
	return release, true, nil
}
