package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "availability:12:2026-10-19", Key(12, "2026-10-19"))
	assert.Equal(t, "60:30", Field(60, 30))
	assert.Equal(t, "availability-gen:12", GenerationKey(12))
}

func TestUnreachableRedisSurfacesError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewAvailabilityRedisCache(rdb, 0)
	assert.Equal(t, 5*time.Minute, c.ttl)

	ctx := context.Background()
	got, err := c.Get(ctx, 1, "2026-10-19", 30, 30)
	assert.Error(t, err)
	assert.False(t, got.Hit)
	assert.Error(t, c.Set(ctx, 1, "2026-10-19", 30, 30, 0, nil))

	assert.Error(t, c.Invalidate(ctx, 1, "2026-10-19"))
	assert.Error(t, c.InvalidateBarber(ctx, 1))
}

// Needs a disposable Redis: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infra/cache
func TestStaleFillIsDiscarded(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	c := NewAvailabilityRedisCache(rdb, time.Minute)
	day := "2026-10-19"
	slots := []domain.Slot{domain.NewSlot(domain.MustTimeOfDay("09:00"), 30)}

	miss, err := c.Get(ctx, 7, day, 30, 30)
	require.NoError(t, err)
	assert.False(t, miss.Hit)

	// uma reserva invalida o dia enquanto a lista antiga era calculada
	require.NoError(t, c.Invalidate(ctx, 7, day))
	require.NoError(t, c.Set(ctx, 7, day, 30, 30, miss.Generation, slots))

	got, err := c.Get(ctx, 7, day, 30, 30)
	require.NoError(t, err)
	assert.False(t, got.Hit)
	assert.Equal(t, miss.Generation+1, got.Generation)

	require.NoError(t, c.Set(ctx, 7, day, 30, 30, got.Generation, slots))
	got, err = c.Get(ctx, 7, day, 30, 30)
	require.NoError(t, err)
	assert.True(t, got.Hit)
	assert.Equal(t, slots, got.Slots)

	require.NoError(t, c.InvalidateBarber(ctx, 7))
	got, err = c.Get(ctx, 7, day, 30, 30)
	require.NoError(t, err)
	assert.False(t, got.Hit)
}
