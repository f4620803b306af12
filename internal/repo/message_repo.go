// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
//
// Callers scope requests with db.WithContext(ctx).
package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// NewMessage describes a message to be appended. Empty optional fields are
// stored as NULL.
type NewMessage struct {
	ClientID      string
	ChatID        string
	OriginID      string
	ContactID     string
	ContentInput  string
	ContentOutput *string
}

// CreateMessage inserts a new message row.
func CreateMessage(db *gorm.DB, in NewMessage) (*domain.Message, error) {
	m := &domain.Message{
		ID:            uuid.NewString(),
		ClientID:      in.ClientID,
		ContactID:     in.ContactID,
		ContentInput:  in.ContentInput,
		ContentOutput: in.ContentOutput,
		Timestamp:     time.Now().UTC(),
	}
	if in.ChatID != "" {
		m.ChatID = &in.ChatID
	}
	if in.OriginID != "" {
		m.OriginID = &in.OriginID
	}
	return m, db.Create(m).Error
}

// ListContactMessagesSince returns the contact's messages at or after since,
// ordered chronologically (Timestamp ASC, ID ASC).
func ListContactMessagesSince(db *gorm.DB, clientID, contactID string, since time.Time) ([]domain.Message, error) {
	var out []domain.Message
	err := db.
		Where("client_id = ? AND contact_id = ? AND timestamp >= ?", clientID, contactID, since).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListContactMessages returns every message the contact exchanged with the
// tenant through originID (NULL origin when originID is nil), oldest first.
func ListContactMessages(db *gorm.DB, clientID, contactID string, originID *string) ([]domain.Message, error) {
	var out []domain.Message
	q := db.Where("client_id = ? AND contact_id = ?", clientID, contactID)
	if originID == nil {
		q = q.Where("origin_id IS NULL")
	} else {
		q = q.Where("origin_id = ?", *originID)
	}
	err := q.Order("timestamp ASC, id ASC").Find(&out).Error
	return out, err
}
