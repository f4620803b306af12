// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the write-mostly audit tables:
// IntegrationLog (one row per upstream call) and SystemLog (one row per
// inbound request whose outcome is tracked).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// CreateIntegrationLog inserts an audit row. ID and timestamps are filled in
// when zero.
func CreateIntegrationLog(ctx context.Context, db *gorm.DB, l *domain.IntegrationLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	l.UpdatedAt = l.CreatedAt
	return db.WithContext(ctx).Create(l).Error
}

// LogFilter narrows ListIntegrationLogs. Zero times are unbounded.
type LogFilter struct {
	From time.Time
	To   time.Time
	// Limit caps the number of rows; <= 0 means no cap.
	Limit int
}

// ListIntegrationLogs returns the tenant's integration logs, newest first.
func ListIntegrationLogs(ctx context.Context, db *gorm.DB, clientID string, f LogFilter) ([]domain.IntegrationLog, error) {
	var out []domain.IntegrationLog
	q := db.WithContext(ctx).Where("client_id = ?", clientID)
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// CountIntegrationLogs returns the number of audit rows for the tenant.
func CountIntegrationLogs(ctx context.Context, db *gorm.DB, clientID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.IntegrationLog{}).Where("client_id = ?", clientID).Count(&n).Error
	return n, err
}

// CreateSystemLog inserts a request-tracking row and returns it.
func CreateSystemLog(ctx context.Context, db *gorm.DB, clientID, origin, content, status string) (*domain.SystemLog, error) {
	now := time.Now().UTC()
	l := &domain.SystemLog{
		ID:            uuid.NewString(),
		ClientID:      clientID,
		Origin:        origin,
		Content:       content,
		StatusMessage: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateSystemLogStatus overwrites the status message of a tracking row.
func UpdateSystemLogStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.SystemLog{}).
		Where("id = ?", id).
		Updates(map[string]any{"status_message": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
