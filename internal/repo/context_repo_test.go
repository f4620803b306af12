package repo

import (
	"context"
	"testing"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

func TestUpsertContext_CreateThenUpdate(t *testing.T) {
	db := newTestDB(t, &domain.ContextSnippet{})
	ctx := context.Background()

	first, created, err := UpsertContext(ctx, db, domain.ContextSnippet{
		ClientID: "cl1", Category: domain.CategorySchedules, Content: "Check-in 14h",
		Keywords: []string{"check-in"}, Priority: 5,
	})
	if err != nil {
		t.Fatalf("UpsertContext: %v", err)
	}
	if !created || first.ID == "" || !first.Active {
		t.Fatalf("expected created active row, got %+v created=%v", first, created)
	}

	second, created, err := UpsertContext(ctx, db, domain.ContextSnippet{
		ClientID: "cl1", Category: domain.CategorySchedules, Content: "Check-in 15h",
		Priority: 7,
	})
	if err != nil {
		t.Fatalf("UpsertContext update: %v", err)
	}
	if created || second.ID != first.ID {
		t.Fatalf("expected update of %s, got %+v created=%v", first.ID, second, created)
	}
	if second.Content != "Check-in 15h" || second.Priority != 7 || len(second.Keywords) != 0 {
		t.Fatalf("unexpected updated row: %+v", second)
	}

	var n int64
	db.Model(&domain.ContextSnippet{}).Where("client_id = ?", "cl1").Count(&n)
	if n != 1 {
		t.Fatalf("expected single row per (tenant, category), got %d", n)
	}
}

func TestListActiveContexts_FilterAndOrder(t *testing.T) {
	db := newTestDB(t, &domain.ContextSnippet{})
	ctx := context.Background()

	for _, s := range []domain.ContextSnippet{
		{ClientID: "cl1", Category: domain.CategoryRooms, Content: "a", Priority: 1},
		{ClientID: "cl1", Category: domain.CategoryPayment, Content: "b", Priority: 9},
		{ClientID: "cl1", Category: domain.CategoryContact, Content: "c", Priority: 3},
		{ClientID: "cl2", Category: domain.CategoryRooms, Content: "x", Priority: 10},
	} {
		if _, _, err := UpsertContext(ctx, db, s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	db.Model(&domain.ContextSnippet{}).Where("client_id = ? AND category = ?", "cl1", domain.CategoryContact).Update("active", false)

	all, err := ListActiveContexts(ctx, db, "cl1", nil)
	if err != nil {
		t.Fatalf("ListActiveContexts: %v", err)
	}
	if len(all) != 2 || all[0].Category != domain.CategoryPayment || all[1].Category != domain.CategoryRooms {
		t.Fatalf("unexpected list: %+v", all)
	}

	only, err := ListActiveContexts(ctx, db, "cl1", []string{domain.CategoryRooms})
	if err != nil || len(only) != 1 || only[0].Category != domain.CategoryRooms {
		t.Fatalf("unexpected filtered list: %+v (%v)", only, err)
	}
}
