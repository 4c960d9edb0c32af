package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSlotLocked is returned when another request is currently booking the
// same slot.
var ErrSlotLocked = errors.New("slot is currently being booked")

// releaseScript deletes the lock key only if it still holds our token, so
// an expired lock reacquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// SlotLocker guards the conflict-check-then-insert critical section per
// (doctor, date, time) slot. It narrows the race window; the partial
// unique index on active appointments is the storage-layer backstop.
type SlotLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisSlotLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrSlotLocked
	}

	defer func() {
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// SlotLockKey builds the lock key for a (doctor, date, time) tuple.
func SlotLockKey(doctorName, date, timeOfDay string) string {
	return fmt.Sprintf("lock:slot:%s:%s:%s", doctorName, date, timeOfDay)
}
