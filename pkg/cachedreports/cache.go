package cachedreports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/revenue"
)

const expiration = 90 * time.Minute

// Cache keeps the sales history of ODs so repeated reads don't resort the passenger lists
type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

func historyKey(service string, origin string, destination string) string {
	return fmt.Sprintf("history/%s/%s/%s", service, origin, destination)
}

func serviceTag(service string) string {
	return fmt.Sprintf("service/%s", service)
}

// GetHistory returns the cached history and whether it was found
func (c *Cache) GetHistory(ctx context.Context, service string, origin string, destination string) ([]revenue.HistoryRecord, bool) {
	value, err := c.Cache.Get(ctx, historyKey(service, origin, destination))
	if err != nil {
		return nil, false
	}

	var history []revenue.HistoryRecord
	if err := json.Unmarshal([]byte(value), &history); err != nil {
		log.Error().Err(err).Str("service", service).Msg("Failed to decode cached history")
		return nil, false
	}

	return history, true
}

func (c *Cache) SetHistory(ctx context.Context, service string, origin string, destination string, history []revenue.HistoryRecord) error {
	value, err := json.Marshal(history)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, historyKey(service, origin, destination), string(value), store.WithTags([]string{serviceTag(service)}))
}

// Invalidate drops every cached history of the service
func (c *Cache) Invalidate(ctx context.Context, service string) error {
	return c.Cache.Invalidate(ctx, store.WithInvalidateTags([]string{serviceTag(service)}))
}
