package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// RoomUpsert is one room-cache refresh taken from an availability response.
// A nil NumberOfPax never overwrites a capacity that is already known.
type RoomUpsert struct {
	RoomCode    string
	RoomType    string
	NumberOfPax *int
}

// UpsertRooms inserts or refreshes cache rows keyed by (clientID, room_code).
// Repeated calls with the same input leave the table unchanged apart from
// UpdatedAt.
func UpsertRooms(ctx context.Context, db *gorm.DB, clientID string, rooms []RoomUpsert) error {
	if len(rooms) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rooms {
			row := domain.HotelRoom{
				ID:          uuid.NewString(),
				ClientID:    clientID,
				RoomCode:    r.RoomCode,
				RoomType:    r.RoomType,
				NumberOfPax: r.NumberOfPax,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "client_id"}, {Name: "room_code"}},
				DoUpdates: clause.Assignments(map[string]any{
					"room_type":     gorm.Expr("excluded.room_type"),
					"number_of_pax": gorm.Expr("COALESCE(excluded.number_of_pax, hotel_rooms.number_of_pax)"),
					"updated_at":    now,
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRooms returns the tenant's cached rooms ordered by room code.
func ListRooms(ctx context.Context, db *gorm.DB, clientID string) ([]domain.HotelRoom, error) {
	var out []domain.HotelRoom
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("room_code ASC").
		Find(&out).Error
	return out, err
}

// RoomTypesByCode maps room_code to room_type for the tenant's cached rooms.
func RoomTypesByCode(ctx context.Context, db *gorm.DB, clientID string) (map[string]string, error) {
	rooms, err := ListRooms(ctx, db, clientID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rooms))
	for _, r := range rooms {
		out[r.RoomCode] = r.RoomType
	}
	return out, nil
}
