package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPlanCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPlanCache(0)

	_, ok, err := c.Get(ctx, "week")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"days":[]}`)
	require.NoError(t, c.Set(ctx, "week", value))
	value[0] = 'X'

	got, ok, err := c.Get(ctx, "week")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"days":[]}`, string(got), "stored value is a copy")

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx, "week")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryPlanCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	c := NewMemoryPlanCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "week", []byte("v")))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "week")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "week")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryPlanCache_KeyTooLong(t *testing.T) {
	c := NewMemoryPlanCache(0)
	long := strings.Repeat("k", KeyMaxLength+1)

	assert.ErrorIs(t, c.Set(context.Background(), long, nil), ErrKeyTooLong)
	_, _, err := c.Get(context.Background(), long)
	assert.ErrorIs(t, err, ErrKeyTooLong)
}

func TestRedisPlanCache_Namespacing(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })

	plain := NewRedisPlanCache(client, "", time.Minute)
	scoped := NewRedisPlanCache(client, "dev", time.Minute)

	key, err := plain.namespaceKey("week:2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "studyplanner:plan:week:2024-05-01", key)

	key, err = scoped.namespaceKey("all")
	require.NoError(t, err)
	assert.Equal(t, "studyplanner:plan:dev:all", key)

	_, err = scoped.namespaceKey(strings.Repeat("k", KeyMaxLength+1))
	assert.ErrorIs(t, err, ErrKeyTooLong)
}
