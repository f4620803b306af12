package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// Memory is an in-process TenantCache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory returns a Memory cache whose entries expire after ttl.
// Expired entries are purged every 2*ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

// Get returns a copy of the cached tenant so callers cannot mutate the entry.
func (m *Memory) Get(_ context.Context, token string) (*domain.Client, bool) {
	v, found := m.c.Get(token)
	if !found {
		return nil, false
	}
	c, ok := v.(domain.Client)
	if !ok {
		return nil, false
	}
	return &c, true
}

func (m *Memory) Set(_ context.Context, token string, c *domain.Client) {
	if c == nil {
		return
	}
	m.c.Set(token, *c, gocache.DefaultExpiration)
}

func (m *Memory) Delete(_ context.Context, token string) {
	m.c.Delete(token)
}
