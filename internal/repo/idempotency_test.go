package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

const testScope = "/api/v1/systems/reservations/make/:client_type"

func TestGetIdempotency_BlankKey_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	rec, err := GetIdempotency(context.Background(), db, "cl1", testScope, "   ", time.Now().UTC())
	if rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound) for blank key, got (%v, %v)", rec, err)
	}
}

func TestGetIdempotency_ExpiredOrMissing_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	exp := &domain.Idempotency{
		ID: "expired", ClientID: "cl1", Scope: testScope, Key: "k1",
		Status: 200, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(exp).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if rec, err := GetIdempotency(context.Background(), db, "cl1", testScope, "k1", now); rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired record to be ignored, got (%v, %v)", rec, err)
	}
	if rec, err := GetIdempotency(context.Background(), db, "cl1", testScope, "missing", now); rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing record to be ErrNotFound, got (%v, %v)", rec, err)
	}
}

func TestCreateIdempotency_ThenGet_AndDuplicate(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "cl1", testScope, "k1", 201, []byte(`{"message":"ok"}`), time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || !rec.ExpiresAt.After(rec.CreatedAt) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "cl1", testScope, "k1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.Status != 201 || string(got.Body) != `{"message":"ok"}` {
		t.Fatalf("unexpected replay data: %+v", got)
	}

	if _, err := CreateIdempotency(ctx, db, "cl1", testScope, "k1", 200, nil, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Another tenant may reuse the key.
	if _, err := CreateIdempotency(ctx, db, "cl2", testScope, "k1", 200, nil, time.Hour); err != nil {
		t.Fatalf("other tenant: %v", err)
	}
}

func TestCreateIdempotency_ReplacesExpired(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	old := &domain.Idempotency{
		ID: "old", ClientID: "cl1", Scope: testScope, Key: "k1",
		Status: 500, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "cl1", testScope, "k1", 200, []byte(`{}`), time.Hour); err != nil {
		t.Fatalf("expected expired record to be replaced, got %v", err)
	}
	got, err := GetIdempotency(ctx, db, "cl1", testScope, "k1", time.Now().UTC())
	if err != nil || got.Status != 200 {
		t.Fatalf("unexpected: %+v %v", got, err)
	}
}

func TestCreateIdempotency_NoTable_ReturnsRawError(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	_, err := CreateIdempotency(context.Background(), db, "cl1", testScope, "k1", 200, nil, time.Hour)
	if err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected raw DB error, got %v", err)
	}
}
