// Package services – ChatService
//
// This file implements the ChatService, which decides whether an inbound
// contact continues an existing conversation or starts a new one, and manages
// the rest of the chat lifecycle (flow flags, archiving, transcripts).
//
// Decision procedure for Validate:
//  1. Look up the newest active chat of (tenant, contact) created within Window.
//  2. No messages from the contact within Window: the chat is still open.
//  3. Otherwise ask the Classifier whether the transcript is finished. Only an
//     answer containing "false" keeps the chat; errors and any other answer
//     start a new chat.
//  4. Resolve the origin by case-insensitive name and create the chat.
//
// The lookup-then-create sequence takes no lock: two concurrent requests for
// the same contact may both create a chat.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/repo"
)

// ClosingQuestion is appended to the transcript sent to the Classifier.
const ClosingQuestion = "Essa conversa foi encerrada? Você deve apenas responder com True ou False."

// DefaultChatWindow is how far back an active chat may be reused.
const DefaultChatWindow = 24 * time.Hour

// ChatRepo defines the repository contract required by ChatService.
// Every method is scoped by tenant.
type ChatRepo interface {
	// CreateChat inserts a new active chat.
	CreateChat(ctx context.Context, db *gorm.DB, clientID, originID, contactID string) (*domain.Chat, error)

	// FindRecentActiveChat returns the newest active chat created at or after since.
	FindRecentActiveChat(ctx context.Context, db *gorm.DB, clientID, contactID string, since time.Time) (*domain.Chat, error)

	// GetChat fetches a chat by ID.
	GetChat(ctx context.Context, db *gorm.DB, clientID, id string) (*domain.Chat, error)

	// UpdateChatFlow sets the flow flags; nil leaves a flag untouched.
	UpdateChatFlow(ctx context.Context, db *gorm.DB, clientID, id string, flow *bool, flowOption *int) error

	// ArchiveChat soft-deletes a chat.
	ArchiveChat(ctx context.Context, db *gorm.DB, clientID, id string) error
}

// Classifier answers free-text questions; llm.Client satisfies it.
type Classifier interface {
	Ask(ctx context.Context, content string) (string, error)
}

// ChatService provides the chat deduplication decision and chat lifecycle
// operations.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the chat repository used by this service.
	Repo ChatRepo
	// Classifier decides whether a transcript is finished. When nil every
	// chat with messages is treated as finished.
	Classifier Classifier

	// Window bounds both chat reuse and the transcript.
	Window time.Duration
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewChatService constructs a ChatService with the default 24h window.
func NewChatService(db *gorm.DB, r ChatRepo, cl Classifier) *ChatService {
	return &ChatService{
		DB:         db,
		Repo:       r,
		Classifier: cl,
		Window:     DefaultChatWindow,
		Now:        time.Now,
	}
}

// ChatDecision is the outcome of Validate.
type ChatDecision struct {
	// Exists is true when an open chat was reused.
	Exists bool
	// Chat is the reused or newly created chat.
	Chat *domain.Chat
}

// Validate returns the chat contactID should write to, creating one when no
// open chat exists. originName is only needed when a chat is created.
//
// Errors:
//   - ErrMissingFields when contactID is empty.
//   - ErrOriginNotFound when a chat must be created and no origin matches.
func (s *ChatService) Validate(ctx context.Context, clientID, contactID, originName string) (*ChatDecision, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Validate",
		trace.WithAttributes(
			attribute.String("tenant.id", clientID),
			attribute.String("contact.id", contactID),
		),
	)
	defer span.End()

	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, ErrMissingFields
	}

	since := s.now().Add(-s.window())
	existing, err := s.Repo.FindRecentActiveChat(ctx, s.DB, clientID, contactID, since)
	switch {
	case err == nil:
		open, err := s.stillOpen(ctx, clientID, contactID, since)
		if err != nil {
			return nil, err
		}
		if open {
			span.SetAttributes(attribute.Bool("chat.reused", true))
			return &ChatDecision{Exists: true, Chat: existing}, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	origin, err := repo.FindOriginByName(ctx, s.DB, originName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOriginNotFound
		}
		return nil, err
	}

	chat, err := s.Repo.CreateChat(ctx, s.DB, clientID, origin.ID, contactID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("chat.reused", false), attribute.String("chat.id", chat.ID))
	return &ChatDecision{Exists: false, Chat: chat}, nil
}

// stillOpen reports whether the contact's recent conversation continues.
func (s *ChatService) stillOpen(ctx context.Context, clientID, contactID string, since time.Time) (bool, error) {
	msgs, err := repo.ListContactMessagesSince(s.DB.WithContext(ctx), clientID, contactID, since)
	if err != nil {
		return false, err
	}
	if len(msgs) == 0 {
		return true, nil
	}
	if s.Classifier == nil {
		return false, nil
	}

	answer, err := s.Classifier.Ask(ctx, ClassifierPrompt(msgs))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("contact_id", contactID).Msg("chat classifier failed; starting a new chat")
		return false, nil
	}
	return ConversationOpen(answer), nil
}

// ConversationOpen interprets a classifier answer: only an answer containing
// "false" (in any case) means the conversation is not finished.
func ConversationOpen(answer string) bool {
	return strings.Contains(strings.ToLower(answer), "false")
}

// ClassifierPrompt renders msgs as "Input: ...\n" / "Output: ...\n" lines
// followed by a blank line and ClosingQuestion.
func ClassifierPrompt(msgs []domain.Message) string {
	var b strings.Builder
	for _, l := range transcriptLines(msgs) {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(ClosingQuestion)
	return b.String()
}

// Transcript joins the "Input:"/"Output:" lines of msgs with newlines.
func Transcript(msgs []domain.Message) string {
	return strings.Join(transcriptLines(msgs), "\n")
}

func transcriptLines(msgs []domain.Message) []string {
	lines := make([]string, 0, 2*len(msgs))
	for _, m := range msgs {
		if in := strings.TrimSpace(m.ContentInput); in != "" {
			lines = append(lines, "Input: "+in)
		}
		if m.ContentOutput != nil {
			if out := strings.TrimSpace(*m.ContentOutput); out != "" {
				lines = append(lines, "Output: "+out)
			}
		}
	}
	return lines
}

// UpdateFlow sets the flow flags of a chat and returns the updated chat.
func (s *ChatService) UpdateFlow(ctx context.Context, clientID, chatID string, flow *bool, flowOption *int) (*domain.Chat, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "UpdateFlow",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	if strings.TrimSpace(chatID) == "" {
		return nil, ErrMissingFields
	}
	if err := s.Repo.UpdateChatFlow(ctx, s.DB, clientID, chatID, flow, flowOption); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	chat, err := s.Repo.GetChat(ctx, s.DB, clientID, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return chat, nil
}

// Archive soft-deletes a chat of the tenant.
func (s *ChatService) Archive(ctx context.Context, clientID, chatID string) error {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Archive",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	if strings.TrimSpace(chatID) == "" {
		return ErrMissingFields
	}
	if err := s.Repo.ArchiveChat(ctx, s.DB, clientID, chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return nil
}

// ChatLog is the full transcript of a chat's contact on the chat's origin.
type ChatLog struct {
	ChatID        string `json:"chat_id"`
	ContactID     string `json:"contact_id"`
	MessagesCount int    `json:"messages_count"`
	Log           string `json:"chat_log"`
}

// Log builds the transcript of every message sharing the chat's tenant,
// origin and contact, oldest first.
func (s *ChatService) Log(ctx context.Context, clientID, chatID string) (*ChatLog, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Log",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	chat, err := s.Repo.GetChat(ctx, s.DB, clientID, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	msgs, err := repo.ListContactMessages(s.DB.WithContext(ctx), clientID, chat.ContactID, chat.OriginID)
	if err != nil {
		return nil, err
	}
	return &ChatLog{
		ChatID:        chat.ID,
		ContactID:     chat.ContactID,
		MessagesCount: len(msgs),
		Log:           Transcript(msgs),
	}, nil
}

func (s *ChatService) window() time.Duration {
	if s.Window <= 0 {
		return DefaultChatWindow
	}
	return s.Window
}

func (s *ChatService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
