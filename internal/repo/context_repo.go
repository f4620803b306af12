package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// UpsertContext creates or replaces the tenant's snippet for in.Category and
// reactivates it. created reports whether a new row was inserted.
func UpsertContext(ctx context.Context, db *gorm.DB, in domain.ContextSnippet) (out *domain.ContextSnippet, created bool, err error) {
	if in.Keywords == nil {
		in.Keywords = []string{}
	}
	now := time.Now().UTC()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur domain.ContextSnippet
		ferr := tx.Where("client_id = ? AND category = ?", in.ClientID, in.Category).First(&cur).Error
		switch {
		case errors.Is(ferr, gorm.ErrRecordNotFound):
			in.ID = uuid.NewString()
			in.Active = true
			in.CreatedAt, in.UpdatedAt = now, now
			if err := tx.Create(&in).Error; err != nil {
				return err
			}
			out, created = &in, true
			return nil
		case ferr != nil:
			return ferr
		}
		cur.Content = in.Content
		cur.Keywords = in.Keywords
		cur.Priority = in.Priority
		cur.Active = true
		cur.UpdatedAt = now
		if err := tx.Save(&cur).Error; err != nil {
			return err
		}
		out = &cur
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// ListActiveContexts returns the tenant's active snippets, optionally limited
// to categories, ordered by priority descending then category.
func ListActiveContexts(ctx context.Context, db *gorm.DB, clientID string, categories []string) ([]domain.ContextSnippet, error) {
	var out []domain.ContextSnippet
	q := db.WithContext(ctx).Where("client_id = ? AND active = ?", clientID, true)
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}
	err := q.Order("priority DESC, category ASC").Find(&out).Error
	return out, err
}
