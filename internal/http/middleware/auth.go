package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/services"
)

const (
	tenantKey     = "tenant"
	bearerPrefix  = "Bearer "
	clientTypeArg = "client_type"

	msgAuthMissing       = "Authorization header missing or invalid"
	msgInvalidToken      = "Invalid token"
	msgClientInactive    = "Client is inactive"
	msgUnsupportedClient = "Unsupported client type"
)

// TenantResolver maps a bearer token to its tenant. It reports
// services.ErrInvalidToken and services.ErrInactiveClient; any other error
// is answered with 500.
type TenantResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Client, error)
}

// TenantResolverFunc adapts a function to TenantResolver.
type TenantResolverFunc func(ctx context.Context, token string) (*domain.Client, error)

// Resolve calls f.
func (f TenantResolverFunc) Resolve(ctx context.Context, token string) (*domain.Client, error) {
	return f(ctx, token)
}

// TenantAuth authenticates "Authorization: Bearer <token>" and stores the
// tenant for TenantFrom. Every rejection is a 403:
//
//   - header absent or without the "Bearer " prefix: "Authorization header missing or invalid"
//   - unknown token: "Invalid token"
//   - inactive tenant: "Client is inactive"
func TenantAuth(res TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, bearerPrefix) {
			abortJSON(c, http.StatusForbidden, "forbidden", msgAuthMissing)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
		if token == "" {
			abortJSON(c, http.StatusForbidden, "forbidden", msgInvalidToken)
			return
		}

		tenant, err := res.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidToken):
			abortJSON(c, http.StatusForbidden, "forbidden", msgInvalidToken)
			return
		case errors.Is(err, services.ErrInactiveClient):
			abortJSON(c, http.StatusForbidden, "forbidden", msgClientInactive)
			return
		default:
			LoggerFrom(c).Error().Err(err).Msg("tenant resolution failed")
			abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		c.Set(tenantKey, tenant)
		setLogger(c, LoggerFrom(c).With().Str("tenant_id", tenant.ID).Logger())
		c.Next()
	}
}

// TenantFrom returns the tenant stored by TenantAuth.
func TenantFrom(c *gin.Context) (*domain.Client, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return nil, false
	}
	t, ok := v.(*domain.Client)
	return t, ok && t != nil
}

// TenantIDFrom returns the authenticated tenant id, or "".
func TenantIDFrom(c *gin.Context) string {
	if t, ok := TenantFrom(c); ok {
		return t.ID
	}
	return ""
}

// ClientType rejects requests whose :client_type path segment is not one of
// allowed with 400 "Unsupported client type".
func ClientType(allowed ...string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[strings.ToLower(a)] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := set[strings.ToLower(c.Param(clientTypeArg))]; !ok {
			abortJSON(c, http.StatusBadRequest, "bad_request", msgUnsupportedClient)
			return
		}
		c.Next()
	}
}
