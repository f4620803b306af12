package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// ContextStats reports how many active context snippets clientID has and
// when the newest of them changed. Both feed the context list ETag, so any
// upsert or deactivation changes the tag. maxUpdatedAt is nil when there are
// no active snippets.
func ContextStats(ctx context.Context, db *gorm.DB, clientID string) (count int64, maxUpdatedAt *time.Time, err error) {
	active := func() *gorm.DB {
		return db.WithContext(ctx).Model(&domain.ContextSnippet{}).
			Where("client_id = ? AND active = ?", clientID, true)
	}

	var latest domain.ContextSnippet
	err = active().Select("updated_at").Order("updated_at DESC").Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	if err = active().Count(&count).Error; err != nil {
		return 0, nil, err
	}
	return count, &latest.UpdatedAt, nil
}
