package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// GetActivePrompt returns the newest active prompt named name for the tenant,
// or ErrNotFound.
func GetActivePrompt(ctx context.Context, db *gorm.DB, clientID, name string) (*domain.SystemPrompt, error) {
	var p domain.SystemPrompt
	err := db.WithContext(ctx).
		Where("client_id = ? AND name = ? AND active = ?", clientID, name, true).
		Order("updated_at DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePrompt inserts p as the active version of its name, deactivating any
// sibling with the same (client_id, name) in the same transaction.
func CreatePrompt(ctx context.Context, db *gorm.DB, p *domain.SystemPrompt) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.Active = true
	p.CreatedAt, p.UpdatedAt = now, now
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateSiblings(tx, p.ClientID, p.Name, p.ID); err != nil {
			return err
		}
		return tx.Create(p).Error
	})
}

// ActivatePrompt marks prompt id active and deactivates its siblings.
// Returns ErrNotFound if the prompt does not belong to clientID.
func ActivatePrompt(ctx context.Context, db *gorm.DB, clientID, id string) (*domain.SystemPrompt, error) {
	var p domain.SystemPrompt
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND client_id = ?", id, clientID).First(&p).Error; err != nil {
			return err
		}
		if err := deactivateSiblings(tx, clientID, p.Name, p.ID); err != nil {
			return err
		}
		p.Active = true
		p.UpdatedAt = time.Now().UTC()
		return tx.Model(&p).Updates(map[string]any{"active": true, "updated_at": p.UpdatedAt}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func deactivateSiblings(tx *gorm.DB, clientID, name, keepID string) error {
	return tx.Model(&domain.SystemPrompt{}).
		Where("client_id = ? AND name = ? AND id <> ? AND active = ?", clientID, name, keepID, true).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()}).Error
}
