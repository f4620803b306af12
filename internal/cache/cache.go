// Package cache keeps resolved tenants keyed by bearer token so that
// authentication does not hit the database on every request.
//
// Two backends are provided: Memory (per-process, patrickmn/go-cache) and
// Redis (shared across replicas, go-redis). Both satisfy TenantCache and
// treat backend failures as cache misses.
package cache

import (
	"context"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// TenantCache stores tenants by bearer token.
type TenantCache interface {
	// Get returns the cached tenant for token, if present.
	Get(ctx context.Context, token string) (*domain.Client, bool)
	// Set stores c under token for the backend's TTL.
	Set(ctx context.Context, token string, c *domain.Client)
	// Delete evicts token.
	Delete(ctx context.Context, token string)
}

// Nop never stores anything. It is used when the TTL is zero.
type Nop struct{}

func (Nop) Get(context.Context, string) (*domain.Client, bool) { return nil, false }
func (Nop) Set(context.Context, string, *domain.Client)        {}
func (Nop) Delete(context.Context, string)                     {}
