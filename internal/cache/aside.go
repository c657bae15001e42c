package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern. On a hit the cached JSON is
// unmarshaled into dest; on a miss fetch is called to populate dest and the
// result is stored with the given TTL. When Redis is unavailable fetch runs
// directly so the caller never notices the cache is gone.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	cached, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(cached, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to fetch.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis error other than a miss: serve from the source.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
