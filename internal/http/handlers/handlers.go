// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they decode the request, take the tenant that
// middleware.TenantAuth resolved, call one service and translate the result
// (or error) into the response.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/http/middleware"
	"github.com/fndrorato/chatbot-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ChatService decides chat reuse and manages a chat's lifecycle.
type ChatService interface {
	Validate(ctx context.Context, clientID, contactID, originName string) (*services.ChatDecision, error)
	UpdateFlow(ctx context.Context, clientID, chatID string, flow *bool, flowOption *int) (*domain.Chat, error)
	Archive(ctx context.Context, clientID, chatID string) error
	Log(ctx context.Context, clientID, chatID string) (*services.ChatLog, error)
}

// MessageService records conversation turns.
type MessageService interface {
	Create(ctx context.Context, clientID string, in services.MessageInput) (*domain.Message, error)
}

// HotelService runs the reservation flows against the tenant's PMS.
type HotelService interface {
	CheckAvailability(ctx context.Context, tenant *domain.Client, body map[string]any, opt services.AvailabilityOptions) (*services.AvailabilityReply, error)
	MakeReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*services.ReservationReply, error)
	ChangeReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*services.ReservationReply, error)
	GetReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*services.LookupReply, error)
	CancelReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*services.LookupReply, error)
	MakeMultiReservations(ctx context.Context, tenant *domain.Client, raw any) (*services.BatchReply, error)
}

// ContextService manages the tenant's prompt context snippets.
type ContextService interface {
	Upsert(ctx context.Context, clientID string, in services.ContextInput) (*domain.ContextSnippet, bool, error)
	List(ctx context.Context, clientID string) ([]domain.ContextSnippet, string, error)
	Relevant(ctx context.Context, clientID, message string, limit int, categories []string) (*services.RelevantContext, error)
	Process(ctx context.Context, clientID, rawText string) (map[string]any, error)
}

// PromptService serves and versions system prompts.
type PromptService interface {
	Get(ctx context.Context, clientID, name string) (*domain.SystemPrompt, error)
	Publish(ctx context.Context, clientID, name, version, text string) (*domain.SystemPrompt, error)
	Activate(ctx context.Context, clientID, id string) (*domain.SystemPrompt, error)
}

// AuditService records and exports integration logs.
type AuditService interface {
	Record(ctx context.Context, clientID string, in services.ManualLog) (*domain.IntegrationLog, error)
	Export(ctx context.Context, clientID string, from, to time.Time) ([]byte, error)
}

// TenantService exposes tenant data.
type TenantService interface {
	Information(ctx context.Context, clientID string) (string, error)
}

//
// Handler wiring
//

// Deps lists the services behind the handlers.
type Deps struct {
	Chats    ChatService
	Messages MessageService
	Hotel    HotelService
	Contexts ContextService
	Prompts  PromptService
	Audit    AuditService
	Tenants  TenantService

	// Location interprets bare dates in export query strings; UTC when nil.
	Location *time.Location
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	chatSvc    ChatService
	msgSvc     MessageService
	hotelSvc   HotelService
	contextSvc ContextService
	promptSvc  PromptService
	auditSvc   AuditService
	tenantSvc  TenantService
	loc        *time.Location
}

// New constructs and returns a Handlers instance bound to the given services.
func New(d Deps) *Handlers {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		chatSvc:    d.Chats,
		msgSvc:     d.Messages,
		hotelSvc:   d.Hotel,
		contextSvc: d.Contexts,
		promptSvc:  d.Prompts,
		auditSvc:   d.Audit,
		tenantSvc:  d.Tenants,
		loc:        loc,
	}
}

// tenant returns the authenticated tenant or answers 403. Routes are always
// mounted behind TenantAuth, so a miss means a wiring mistake.
func tenant(c *gin.Context) (*domain.Client, bool) {
	t, found := middleware.TenantFrom(c)
	if !found {
		fail(c, http.StatusForbidden, ErrCodeForbidden, MsgTenantMissing)
		return nil, false
	}
	return t, true
}
