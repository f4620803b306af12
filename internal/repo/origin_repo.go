package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// FindOriginByName resolves an origin by Unicode case-folded name match.
// Returns ErrNotFound (gorm.ErrRecordNotFound) when no origin has that name.
// SQLite's LOWER only maps ASCII, so names are folded here.
func FindOriginByName(ctx context.Context, db *gorm.DB, name string) (*domain.Origin, error) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))

	var all []domain.Origin
	if err := db.WithContext(ctx).Order("name").Find(&all).Error; err != nil {
		return nil, err
	}
	for i := range all {
		if fold.String(all[i].Name) == want {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateOrigin inserts an active origin with the given name.
func CreateOrigin(ctx context.Context, db *gorm.DB, name string) (*domain.Origin, error) {
	o := &domain.Origin{ID: uuid.NewString(), Name: name, Active: true}
	if err := db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}
