package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"catalog_sync/internal/adapters/observability"
	"catalog_sync/internal/domain"
)

// EntryStore keeps the enrichment cache in one Redis hash: field = ASIN,
// value = the JSON encoded entry.
type EntryStore struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *EntryStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key)
}

func NewWithClient(c *redis.Client, key string) *EntryStore {
	return &EntryStore{c: c, key: key}
}

func (r *EntryStore) Close() error { return r.c.Close() }

// Load returns every stored entry. Fields that do not decode are dropped so
// they get fetched again.
func (r *EntryStore) Load(ctx context.Context) (domain.CacheMap, error) {
	raw, err := r.c.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", r.key, err)
	}
	out := make(domain.CacheMap, len(raw))
	for asin, v := range raw {
		var e domain.CacheEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			observability.ObserveCache("redis", "fail")
			log.Warn().Str("asin", asin).Err(err).Msg("dropping undecodable cache entry")
			continue
		}
		out[asin] = e
	}
	if len(out) == 0 {
		observability.ObserveCache("redis", "miss")
	} else {
		observability.ObserveCache("redis", "hit")
	}
	return out, nil
}

// Save replaces the whole hash atomically.
func (r *EntryStore) Save(ctx context.Context, m domain.CacheMap) error {
	fields := make([]any, 0, len(m)*2)
	for asin, e := range m {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry %s: %w", asin, err)
		}
		fields = append(fields, asin, b)
	}

	_, err := r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.key)
		if len(fields) > 0 {
			p.HSet(ctx, r.key, fields...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", r.key, err)
	}
	observability.ObserveCache("redis", "set")
	return nil
}
