package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "etherblink:action:"

// RedisClient is the part of *redis.Client the cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis shares cached records between server instances.
type Redis struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedis(client RedisClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get treats every redis failure as a miss; the store stays the source of truth.
func (r *Redis) Get(ctx context.Context, shortID string) (models.ActionRecord, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+shortID).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("redis get failed")
		}
		return models.ActionRecord{}, false
	}

	var rec models.ActionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logrus.WithError(err).Warnf("corrupt cache entry for %s", shortID)
		return models.ActionRecord{}, false
	}
	return rec, true
}

func (r *Redis) Set(ctx context.Context, rec models.ActionRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+rec.ShortID, data, r.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("redis set failed")
	}
}
