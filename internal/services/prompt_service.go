package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/repo"
)

// DefaultPromptName is looked up when no prompt name is given.
const DefaultPromptName = "main"

// PromptService serves versioned system prompts. At most one prompt per
// (tenant, name) is active.
type PromptService struct {
	DB *gorm.DB
}

// NewPromptService constructs a PromptService.
func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{DB: db}
}

// Get returns the newest active prompt called name (DefaultPromptName when
// blank), or ErrPromptNotFound.
func (s *PromptService) Get(ctx context.Context, clientID, name string) (*domain.SystemPrompt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPromptName
	}
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("prompt.name", name)),
	)
	defer span.End()

	p, err := repo.GetActivePrompt(ctx, s.DB, clientID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return p, nil
}

// Publish stores a new active version of a prompt, deactivating the
// previous versions with the same name.
func (s *PromptService) Publish(ctx context.Context, clientID, name, version, text string) (*domain.SystemPrompt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPromptName
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingFields
	}
	if version == "" {
		version = "1.0"
	}
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "Publish",
		trace.WithAttributes(attribute.String("prompt.name", name), attribute.String("prompt.version", version)),
	)
	defer span.End()

	p := &domain.SystemPrompt{ClientID: clientID, Name: name, Version: version, Prompt: text}
	if err := repo.CreatePrompt(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Activate makes the prompt with id the active version of its name.
func (s *PromptService) Activate(ctx context.Context, clientID, id string) (*domain.SystemPrompt, error) {
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "Activate",
		trace.WithAttributes(attribute.String("prompt.id", id)),
	)
	defer span.End()

	p, err := repo.ActivatePrompt(ctx, s.DB, clientID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return p, nil
}
