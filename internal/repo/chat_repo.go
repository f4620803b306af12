// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Chat model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Every query is scoped by tenant.
//
// Error semantics:
//   - When a chat is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateChat(ctx, db, clientID, originID, contactID) -> *domain.Chat, error
//     Inserts a new active Chat with UUID primary key and UTC timestamp.
//
//   - FindRecentActiveChat(ctx, db, clientID, contactID, since) -> *domain.Chat, error
//     Returns the newest active chat created at or after since.
//
//   - GetChat(ctx, db, clientID, id) -> *domain.Chat, error
//     Fetches a single chat by ID, or ErrNotFound if missing.
//
//   - UpdateChatFlow(ctx, db, clientID, id, flow, flowOption) -> error
//     Sets the flow flags of a chat. Returns ErrNotFound if missing.
//
//   - ArchiveChat(ctx, db, clientID, id) -> error
//     Soft-deletes a chat by moving it to status "archived".
//
// Usage:
//
//	chat, err := repo.FindRecentActiveChat(ctx, db, tenantID, contactID, time.Now().Add(-24*time.Hour))
//	if errors.Is(err, repo.ErrNotFound) {
//	    // start a new chat
//	} else if err != nil {
//	    // handle DB failure
//	}
//
// This repository is wrapped by services.ChatService, which owns the
// deduplication decision.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateChat inserts a new active Chat for contactID owned by clientID.
// originID may be empty. The chat ID is a random UUID and CreatedAt is UTC.
func CreateChat(ctx context.Context, db *gorm.DB, clientID, originID, contactID string) (*domain.Chat, error) {
	flow, option := false, 0
	c := &domain.Chat{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		ContactID:  contactID,
		Flow:       &flow,
		FlowOption: &option,
		Status:     domain.ChatActive,
		CreatedAt:  time.Now().UTC(),
	}
	if originID != "" {
		c.OriginID = &originID
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// FindRecentActiveChat returns the most recently created active chat for
// (clientID, contactID) whose CreatedAt is not before since.
func FindRecentActiveChat(ctx context.Context, db *gorm.DB, clientID, contactID string, since time.Time) (*domain.Chat, error) {
	var c domain.Chat
	err := db.WithContext(ctx).
		Where("client_id = ? AND contact_id = ? AND status = ? AND created_at >= ?",
			clientID, contactID, domain.ChatActive, since).
		Order("created_at desc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChat fetches a single chat by its ID within clientID. If the record
// does not exist, it returns ErrNotFound.
func GetChat(ctx context.Context, db *gorm.DB, clientID, id string) (*domain.Chat, error) {
	var c domain.Chat
	err := db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateChatFlow updates the flow flags of a chat. Nil arguments leave the
// stored value untouched. Returns ErrNotFound if no row matched.
func UpdateChatFlow(ctx context.Context, db *gorm.DB, clientID, id string, flow *bool, flowOption *int) error {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if flow != nil {
		updates["flow"] = *flow
	}
	if flowOption != nil {
		updates["flow_option"] = *flowOption
	}
	res := db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ArchiveChat moves a chat to status "archived". Chats are never hard-deleted.
// Returns ErrNotFound if no row matched.
func ArchiveChat(ctx context.Context, db *gorm.DB, clientID, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(map[string]any{"status": domain.ChatArchived, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
