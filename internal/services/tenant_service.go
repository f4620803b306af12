package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/cache"
	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/repo"
)

// TenantService resolves bearer tokens to tenants, with a token cache in
// front of the database.
type TenantService struct {
	DB    *gorm.DB
	Cache cache.TenantCache
}

// NewTenantService constructs a TenantService. A nil cache disables caching.
func NewTenantService(db *gorm.DB, c cache.TenantCache) *TenantService {
	if c == nil {
		c = cache.Nop{}
	}
	return &TenantService{DB: db, Cache: c}
}

// Resolve returns the active tenant owning token.
//
// Errors:
//   - ErrInvalidToken when no tenant owns token.
//   - ErrInactiveClient when the tenant is disabled.
func (s *TenantService) Resolve(ctx context.Context, token string) (*domain.Client, error) {
	tr := otel.Tracer("services/TenantService")
	ctx, span := tr.Start(ctx, "Resolve")
	defer span.End()

	c, ok := s.Cache.Get(ctx, token)
	if !ok {
		var err error
		c, err = repo.GetClientByToken(ctx, s.DB, token)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		if err != nil {
			return nil, err
		}
		s.Cache.Set(ctx, token, c)
	}
	span.SetAttributes(attribute.String("tenant.id", c.ID), attribute.Bool("cache.hit", ok))

	if !c.Active {
		return nil, ErrInactiveClient
	}
	return c, nil
}

// Information returns the tenant's stored information_basic document, read
// from the database so that recent updates are visible.
func (s *TenantService) Information(ctx context.Context, clientID string) (string, error) {
	tr := otel.Tracer("services/TenantService")
	ctx, span := tr.Start(ctx, "Information",
		trace.WithAttributes(attribute.String("tenant.id", clientID)),
	)
	defer span.End()

	c, err := repo.GetClient(ctx, s.DB, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return c.InformationBasic, nil
}

// Forget evicts token from the cache.
func (s *TenantService) Forget(ctx context.Context, token string) {
	s.Cache.Delete(ctx, token)
}
