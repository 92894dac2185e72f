package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const keyPrefix = "clinic:directory:"

// DirectoryCache é um cache read-through na frente de um Directory.
// Ausências não são cacheadas; falha no Redis cai para a origem.
type DirectoryCache struct {
	next   domain.Directory
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewDirectoryCache(
	next domain.Directory,
	rdb *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) *DirectoryCache {
	return &DirectoryCache{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "directory_cache").Logger(),
	}
}

func (c *DirectoryCache) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	return readThrough(ctx, c, key("professional", id), func() (*models.Professional, error) {
		return c.next.GetProfessional(ctx, id)
	})
}

func (c *DirectoryCache) GetService(ctx context.Context, id string) (*models.Service, error) {
	return readThrough(ctx, c, key("service", id), func() (*models.Service, error) {
		return c.next.GetService(ctx, id)
	})
}

func (c *DirectoryCache) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return readThrough(ctx, c, key("location", id), func() (*models.Location, error) {
		return c.next.GetLocation(ctx, id)
	})
}

// Invalidate descarta a entidade do cache depois de uma escrita.
// entity: professional, service ou location.
func (c *DirectoryCache) Invalidate(ctx context.Context, entity, id string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, key(entity, id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("cache invalidate failed")
	}
}

func readThrough[T any](
	ctx context.Context,
	c *DirectoryCache,
	k string,
	load func() (*T, error),
) (*T, error) {

	var cached T
	if c.readCache(ctx, k, &cached) {
		return &cached, nil
	}

	v, err := load()
	if err != nil || v == nil {
		return v, err
	}

	c.writeCache(ctx, k, v)
	return v, nil
}

func (c *DirectoryCache) readCache(ctx context.Context, k string, out any) bool {
	if c.redis == nil || c.ttl <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, k).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", k).Msg("cache read failed")
		}
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (c *DirectoryCache) writeCache(ctx context.Context, k string, val any) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, k, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("cache write failed")
	}
}

func key(entity, id string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, entity, id)
}

var _ domain.Directory = (*DirectoryCache)(nil)
