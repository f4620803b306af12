// Package services – MessageService
//
// MessageService appends inbound/outbound message pairs to the message log.
// Messages are never updated or deleted. The chat and origin references are
// best-effort: an unknown chat_id or origin name is stored as NULL rather
// than rejected.
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

// MessageService records chat messages.
type MessageService struct {
	DB *gorm.DB
}

// NewMessageService constructs a MessageService.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// MessageInput is one message to record.
//
// Fields:
//   - ChatID / ContactID: required.
//   - ContentInput: text received from the contact (may be empty).
//   - ContentOutput: reply text, if any.
//   - Origin: optional origin name, matched case-insensitively.
type MessageInput struct {
	ChatID        string
	ContactID     string
	ContentInput  string
	ContentOutput *string
	Origin        *string
}

// Create stores in for the tenant and returns the new message.
func (s *MessageService) Create(ctx context.Context, clientID string, in MessageInput) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("chat.id", in.ChatID),
			attribute.String("contact.id", in.ContactID),
		),
	)
	defer span.End()

	if strings.TrimSpace(in.ChatID) == "" || strings.TrimSpace(in.ContactID) == "" {
		return nil, ErrMissingFields
	}

	rec := repo.NewMessage{
		ClientID:      clientID,
		ContactID:     in.ContactID,
		ContentInput:  in.ContentInput,
		ContentOutput: in.ContentOutput,
	}

	if in.Origin != nil {
		o, err := repo.FindOriginByName(ctx, s.DB, *in.Origin)
		switch {
		case err == nil:
			rec.OriginID = o.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	chat, err := repo.GetChat(ctx, s.DB, clientID, in.ChatID)
	switch {
	case err == nil:
		rec.ChatID = chat.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return repo.CreateMessage(s.DB.WithContext(ctx), rec)
}
