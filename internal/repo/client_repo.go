package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// NewClientToken returns a fresh bearer token (UUIDv4 without dashes).
func NewClientToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateClient inserts a tenant. ID and Token are generated when empty.
func CreateClient(ctx context.Context, db *gorm.DB, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Token == "" {
		c.Token = NewClientToken()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return db.WithContext(ctx).Create(c).Error
}

// GetClientByToken returns the tenant owning token regardless of its Active
// flag, or ErrNotFound.
func GetClientByToken(ctx context.Context, db *gorm.DB, token string) (*domain.Client, error) {
	var c domain.Client
	err := db.WithContext(ctx).Where("token = ?", token).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetClient returns the tenant with the given ID, or ErrNotFound.
func GetClient(ctx context.Context, db *gorm.DB, id string) (*domain.Client, error) {
	var c domain.Client
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateClientInformation replaces the tenant's structured information
// document. Returns ErrNotFound when no row matched.
func UpdateClientInformation(ctx context.Context, db *gorm.DB, clientID, info string) error {
	res := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{"information_basic": info, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
