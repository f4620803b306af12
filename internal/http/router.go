// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, tenant authentication, idempotency, and rate
// limiting.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/cache"
	"github.com/fndrorato/chatbot-backend/internal/config"
	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/http/handlers"
	"github.com/fndrorato/chatbot-backend/internal/http/middleware"
	"github.com/fndrorato/chatbot-backend/internal/repo"
	"github.com/fndrorato/chatbot-backend/internal/services"
	"github.com/fndrorato/chatbot-backend/internal/upstream"
)

// maxBodyBytes caps request bodies; multi-room batches are the largest.
const maxBodyBytes = 1 << 20

// chatRepoShim adapts the repository free functions to the services.ChatRepo
// interface expected by the ChatService.
type chatRepoShim struct{}

// CreateChat proxies repo.CreateChat.
func (chatRepoShim) CreateChat(ctx context.Context, db *gorm.DB, clientID, originID, contactID string) (*domain.Chat, error) {
	return repo.CreateChat(ctx, db, clientID, originID, contactID)
}

// FindRecentActiveChat proxies repo.FindRecentActiveChat.
func (chatRepoShim) FindRecentActiveChat(ctx context.Context, db *gorm.DB, clientID, contactID string, since time.Time) (*domain.Chat, error) {
	return repo.FindRecentActiveChat(ctx, db, clientID, contactID, since)
}

// GetChat proxies repo.GetChat.
func (chatRepoShim) GetChat(ctx context.Context, db *gorm.DB, clientID, id string) (*domain.Chat, error) {
	return repo.GetChat(ctx, db, clientID, id)
}

// UpdateChatFlow proxies repo.UpdateChatFlow.
func (chatRepoShim) UpdateChatFlow(ctx context.Context, db *gorm.DB, clientID, id string, flow *bool, flowOption *int) error {
	return repo.UpdateChatFlow(ctx, db, clientID, id, flow, flowOption)
}

// ArchiveChat proxies repo.ArchiveChat.
func (chatRepoShim) ArchiveChat(ctx context.Context, db *gorm.DB, clientID, id string) error {
	return repo.ArchiveChat(ctx, db, clientID, id)
}

// idempotencyStore persists replayable responses in the idempotency table.
type idempotencyStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func (s idempotencyStore) Lookup(ctx context.Context, clientID, scope, key string, now time.Time) (*middleware.StoredResponse, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, clientID, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &middleware.StoredResponse{Status: rec.Status, Body: rec.Body}, nil
}

func (s idempotencyStore) Save(ctx context.Context, clientID, scope, key string, resp middleware.StoredResponse) error {
	_, err := repo.CreateIdempotency(ctx, s.db, clientID, scope, key, resp.Status, resp.Body, s.ttl)
	return err
}

// LanguageModel is the OpenAI-compatible client behind the conversation
// classifier and the hotel text structurer; *llm.Client satisfies it.
type LanguageModel interface {
	services.Classifier
	services.Structurer
}

// Deps are the process-level resources the routes are built on.
//
// Fields:
//   - DB: required.
//   - LLM: optional; without it every chat with messages counts as finished
//     and context processing fails.
//   - TenantCache: optional token cache; nil disables caching.
//   - Upstream: optional resty client for the hotel systems (tests point it
//     at a fake server).
//   - Registerer: Prometheus registry for HTTP metrics; nil uses the default.
type Deps struct {
	DB          *gorm.DB
	LLM         LanguageModel
	TenantCache cache.TenantCache
	Upstream    *resty.Client
	Registerer  prometheus.Registerer
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter, gzip
//  6. Metrics
//  7. CORS and security headers
//
// Per API group: TenantAuth, then the rate limiter (keyed by tenant). Routes
// with :client_type add the client type guard; reservation creation adds
// Idempotency last, so replays still spend a rate-limit token.
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key", "X-Api-Token"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body limit and response compression
	r.Use(limitBody(maxBodyBytes))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	// 6) Prometheus metrics and /metrics endpoint
	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r.Use(middleware.NewHTTPMetrics(reg).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) CORS posture and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/clients
	auditSvc := services.NewAuditService(d.DB)
	tenantSvc := services.NewTenantService(d.DB, d.TenantCache)

	var gwOpts []upstream.Option
	if d.Upstream != nil {
		gwOpts = append(gwOpts, upstream.WithClient(d.Upstream))
	}
	gwOpts = append(gwOpts, upstream.WithDefaultTimeout(cfg.UpstreamTimeout))
	hotelSvc := services.NewHotelService(d.DB, upstream.New(auditSvc, gwOpts...))
	hotelSvc.Timeout = cfg.UpstreamTimeout
	hotelSvc.ShortTimeout = cfg.UpstreamShortTime

	chatSvc := services.NewChatService(d.DB, chatRepoShim{}, nil)
	chatSvc.Window = cfg.ChatWindow
	var structurer services.Structurer
	if d.LLM != nil {
		chatSvc.Classifier = d.LLM
		structurer = d.LLM
	}
	contextSvc := services.NewContextService(d.DB, structurer)
	if cfg.ContextMaxDefault > 0 {
		contextSvc.DefaultMax = cfg.ContextMaxDefault
	}

	h := handlers.New(handlers.Deps{
		Chats:    chatSvc,
		Messages: services.NewMessageService(d.DB),
		Hotel:    hotelSvc,
		Contexts: contextSvc,
		Prompts:  services.NewPromptService(d.DB),
		Audit:    auditSvc,
		Tenants:  tenantSvc,
	})

	auth := middleware.TenantAuth(tenantSvc)
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByTenantOrIP())
	hotelOnly := middleware.ClientType("hotel")
	idem := middleware.Idempotency(middleware.IdempotencyOptions{MaxLen: 200}, idempotencyStore{db: d.DB, ttl: cfg.IdempotencyTTL})

	api := groupWithPrefix(r, cfg.APIBasePath)

	v1 := api.Group("/v1", auth, rl.Handler())
	{
		chats := v1.Group("/chats")
		chats.POST("/validate", h.ValidateChat)
		chats.PUT("/chat/update", h.UpdateChatFlow)
		chats.POST("/messages/:client_type", hotelOnly, h.CreateMessage)
		chats.DELETE("/delete/chat/:client_type", hotelOnly, h.ArchiveChat)
		chats.GET("/chat/log/:chat_id", h.ChatLog)

		sys := v1.Group("/systems")
		sys.POST("/check-availability/:client_type", hotelOnly, h.CheckAvailability)
		sys.POST("/reservations/make/:client_type", hotelOnly, idem, h.MakeReservation)
		sys.POST("/reservations/multi-reservation/:client_type", hotelOnly, idem, h.MakeMultiReservations)
		sys.POST("/reservations/get/:client_type", hotelOnly, h.GetReservation)
		sys.POST("/reservations/change/:client_type", hotelOnly, h.ChangeReservation)
		sys.POST("/reservations/cancel/:client_type", hotelOnly, h.CancelReservation)

		sys.POST("/context/relevant", h.RelevantContext)
		sys.POST("/context", h.UpsertContext)
		sys.GET("/context", h.ListContexts)

		sys.POST("/prompt", h.GetPrompt)
		sys.POST("/prompt/publish", h.PublishPrompt)
		sys.PUT("/prompt/:id/activate", h.ActivatePrompt)

		sys.POST("/logs/integration", h.CreateIntegrationLog)
		sys.GET("/logs/integration/export", h.ExportIntegrationLogs)

		clients := v1.Group("/clients")
		clients.GET("/info", h.ClientInfo)
		clients.POST("/context/process", h.ProcessContext)
	}

	v11 := api.Group("/v1.1", auth, rl.Handler())
	{
		v11.POST("/systems/check-availability/:client_type", hotelOnly, h.CheckAvailabilityV11)
	}
}

// corsMiddleware allows every origin when allowed is empty, otherwise only
// the listed ones. Credentials are never allowed: clients authenticate with
// bearer tokens.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey, "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition", "ETag", middleware.HeaderIdempotencyReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowed) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = allowed
	}
	return cors.New(cc)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
