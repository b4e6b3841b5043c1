package cachedreports

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/revenue/pkg/revenue"
)

func newTestCache(t *testing.T) *Cache {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	c := &Cache{}
	c.Setup(client)

	return c
}

func TestHistoryRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, found := c.GetHistory(ctx, "7601", "ply", "lpd")
	assert.False(t, found)

	history := []revenue.HistoryRecord{
		{SaleDayX: -30, Count: 1, Revenue: 20},
		{SaleDayX: -20, Count: 2, Revenue: 80},
	}
	require.NoError(t, c.SetHistory(ctx, "7601", "ply", "lpd", history))

	cached, found := c.GetHistory(ctx, "7601", "ply", "lpd")
	assert.True(t, found)
	assert.Equal(t, history, cached)

	_, found = c.GetHistory(ctx, "7601", "ply", "msc")
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	history := []revenue.HistoryRecord{{SaleDayX: -1, Count: 1, Revenue: 1}}
	require.NoError(t, c.SetHistory(ctx, "7601", "ply", "lpd", history))
	require.NoError(t, c.SetHistory(ctx, "7601", "lpd", "msc", history))
	require.NoError(t, c.SetHistory(ctx, "6101", "ply", "dij", history))

	require.NoError(t, c.Invalidate(ctx, "7601"))

	_, found := c.GetHistory(ctx, "7601", "ply", "lpd")
	assert.False(t, found)
	_, found = c.GetHistory(ctx, "7601", "lpd", "msc")
	assert.False(t, found)
	_, found = c.GetHistory(ctx, "6101", "ply", "dij")
	assert.True(t, found)
}
