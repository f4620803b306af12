package repo

import (
	"context"
	"testing"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

func intp(v int) *int { return &v }

func TestUpsertRooms_IdempotentByClientAndCode(t *testing.T) {
	db := newTestDB(t, &domain.HotelRoom{})
	ctx := context.Background()

	in := []RoomUpsert{
		{RoomCode: "STD", RoomType: "Standard", NumberOfPax: intp(2)},
		{RoomCode: "LUX", RoomType: "Luxo"},
	}
	for i := 0; i < 2; i++ {
		if err := UpsertRooms(ctx, db, "cl1", in); err != nil {
			t.Fatalf("UpsertRooms #%d: %v", i, err)
		}
	}

	rooms, err := ListRooms(ctx, db, "cl1")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rows after repeated upsert, got %d", len(rooms))
	}
	if rooms[0].RoomCode != "LUX" || rooms[0].NumberOfPax != nil {
		t.Fatalf("unexpected LUX row: %+v", rooms[0])
	}
	if rooms[1].RoomCode != "STD" || rooms[1].NumberOfPax == nil || *rooms[1].NumberOfPax != 2 {
		t.Fatalf("unexpected STD row: %+v", rooms[1])
	}
}

func TestUpsertRooms_KeepsKnownCapacityAndUpdatesType(t *testing.T) {
	db := newTestDB(t, &domain.HotelRoom{})
	ctx := context.Background()

	if err := UpsertRooms(ctx, db, "cl1", []RoomUpsert{{RoomCode: "STD", RoomType: "Standard", NumberOfPax: intp(3)}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := UpsertRooms(ctx, db, "cl1", []RoomUpsert{{RoomCode: "STD", RoomType: "Standard Plus"}}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	rooms, err := ListRooms(ctx, db, "cl1")
	if err != nil || len(rooms) != 1 {
		t.Fatalf("unexpected rows: %+v %v", rooms, err)
	}
	if rooms[0].RoomType != "Standard Plus" {
		t.Fatalf("expected type refresh, got %q", rooms[0].RoomType)
	}
	if rooms[0].NumberOfPax == nil || *rooms[0].NumberOfPax != 3 {
		t.Fatalf("known capacity must survive a nil refresh, got %v", rooms[0].NumberOfPax)
	}
}

func TestRoomTypesByCode_TenantScoped(t *testing.T) {
	db := newTestDB(t, &domain.HotelRoom{})
	ctx := context.Background()

	_ = UpsertRooms(ctx, db, "cl1", []RoomUpsert{{RoomCode: "STD", RoomType: "Standard"}})
	_ = UpsertRooms(ctx, db, "cl2", []RoomUpsert{{RoomCode: "STD", RoomType: "Other"}})

	m, err := RoomTypesByCode(ctx, db, "cl1")
	if err != nil {
		t.Fatalf("RoomTypesByCode: %v", err)
	}
	if len(m) != 1 || m["STD"] != "Standard" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestUpsertRooms_EmptyIsNoop(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if err := UpsertRooms(context.Background(), db, "cl1", nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
