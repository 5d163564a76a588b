package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const (
	keyPrefix        = "availability"
	generationPrefix = "availability-gen"
)

// setIfGeneration writes the slot list only while the barber's generation
// still matches the one read before computing it.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[1])
if not gen then
  gen = "0"
end
if gen ~= ARGV[1] then
  return 0
end
redis.call("HSET", KEYS[2], ARGV[2], ARGV[3])
redis.call("PEXPIRE", KEYS[2], ARGV[4])
return 1
`)

// AvailabilityRedisCache keeps one hash per barber and day; each field is a
// duration/step combination holding the computed slot list.
type AvailabilityRedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityRedisCache(rdb *redis.Client, ttl time.Duration) *AvailabilityRedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityRedisCache{rdb: rdb, ttl: ttl}
}

func Key(barberID uint, date string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, barberID, date)
}

func Field(durationMinutes, stepMinutes int) string {
	return fmt.Sprintf("%d:%d", durationMinutes, stepMinutes)
}

func GenerationKey(barberID uint) string {
	return fmt.Sprintf("%s:%d", generationPrefix, barberID)
}

func (c *AvailabilityRedisCache) Get(
	ctx context.Context,
	barberID uint,
	date string,
	durationMinutes int,
	stepMinutes int,
) (ucAppointment.CachedSlots, error) {

	var genCmd *redis.StringCmd
	var slotsCmd *redis.StringCmd
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		genCmd = p.Get(ctx, GenerationKey(barberID))
		slotsCmd = p.HGet(ctx, Key(barberID, date), Field(durationMinutes, stepMinutes))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return ucAppointment.CachedSlots{}, err
	}

	var out ucAppointment.CachedSlots
	out.Generation, err = genCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ucAppointment.CachedSlots{}, err
	}

	raw, err := slotsCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return out, nil
	}
	if err != nil {
		return ucAppointment.CachedSlots{}, err
	}

	if err := json.Unmarshal(raw, &out.Slots); err != nil {
		return ucAppointment.CachedSlots{}, err
	}
	out.Hit = true
	return out, nil
}

// Set is a no-op when an Invalidate ran since the Get that produced generation.
func (c *AvailabilityRedisCache) Set(
	ctx context.Context,
	barberID uint,
	date string,
	durationMinutes int,
	stepMinutes int,
	generation int64,
	slots []domain.Slot,
) error {

	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	return setIfGeneration.Run(ctx, c.rdb,
		[]string{GenerationKey(barberID), Key(barberID, date)},
		strconv.FormatInt(generation, 10),
		Field(durationMinutes, stepMinutes),
		raw,
		c.ttl.Milliseconds(),
	).Err()
}

func (c *AvailabilityRedisCache) Invalidate(ctx context.Context, barberID uint, date string) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, GenerationKey(barberID))
		p.Del(ctx, Key(barberID, date))
		return nil
	})
	return err
}

// InvalidateBarber drops every cached day of barberID. Used when the
// working hours change.
func (c *AvailabilityRedisCache) InvalidateBarber(ctx context.Context, barberID uint) error {
	if err := c.rdb.Incr(ctx, GenerationKey(barberID)).Err(); err != nil {
		return err
	}

	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("%s:%d:*", keyPrefix, barberID), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
