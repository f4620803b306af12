package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// keyPrefix namespaces tenant entries inside a shared Redis database.
const keyPrefix = "chatbot:tenant:"

// Redis is a TenantCache shared by every replica.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis wraps an existing client. Entries expire after ttl.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// redisTenant is the cached projection of domain.Client. Token and API
// credentials are excluded from the JSON tags on domain.Client, so they are
// carried explicitly here.
type redisTenant struct {
	Client   domain.Client `json:"client"`
	Token    string        `json:"token"`
	APIToken string        `json:"api_token"`
}

func (r *Redis) Get(ctx context.Context, token string) (*domain.Client, bool) {
	data, err := r.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) || len(data) == 0 {
		return nil, false
	} else if err != nil {
		log.Warn().Err(err).Msg("tenant cache: redis GET failed")
		return nil, false
	}
	var rt redisTenant
	if err := json.Unmarshal(data, &rt); err != nil {
		log.Warn().Err(err).Msg("tenant cache: corrupt entry")
		return nil, false
	}
	c := rt.Client
	c.Token = rt.Token
	c.APIToken = rt.APIToken
	return &c, true
}

func (r *Redis) Set(ctx context.Context, token string, c *domain.Client) {
	if c == nil {
		return
	}
	data, err := json.Marshal(redisTenant{Client: *c, Token: c.Token, APIToken: c.APIToken})
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, keyPrefix+token, data, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("tenant cache: redis SET failed")
	}
}

func (r *Redis) Delete(ctx context.Context, token string) {
	if err := r.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		log.Warn().Err(err).Msg("tenant cache: redis DEL failed")
	}
}
