package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/export"
	"github.com/fndrorato/chatbot-backend/internal/repo"
)

func TestAuditService_Record(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, true)
	s := NewAuditService(db)
	ctx := context.Background()

	l, err := s.Record(ctx, tenant.ID, ManualLog{
		Origin:     "n8n",
		To:         "https://pms.test/app/reservations/getReservation",
		Content:    json.RawMessage(`{"id_reserva":991}`),
		Response:   json.RawMessage(`not json`),
		StatusHTTP: 200,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if l.ID == "" || l.ContactID != UnknownContact {
		t.Fatalf("unexpected log: %+v", l)
	}

	rows, err := repo.ListIntegrationLogs(ctx, db, tenant.ID, repo.LogFilter{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("list: %+v %v", rows, err)
	}
	if string(rows[0].Content) != `{"id_reserva":991}` || string(rows[0].Response) != "null" || rows[0].StatusHTTP != 200 {
		t.Fatalf("stored row: %+v", rows[0])
	}
}

func TestAuditService_RecordIntegration(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, true)
	s := NewAuditService(db)

	if err := s.RecordIntegration(context.Background(), &domain.IntegrationLog{
		ClientID: tenant.ID, ContactID: "5511", StatusHTTP: 504, ResponseTime: 30,
	}); err != nil {
		t.Fatalf("RecordIntegration: %v", err)
	}
	n, err := repo.CountIntegrationLogs(context.Background(), db, tenant.ID)
	if err != nil || n != 1 {
		t.Fatalf("count = %d %v", n, err)
	}
}

func TestAuditService_Export(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, true)
	other := seedTenant(t, db, true)
	s := NewAuditService(db)
	ctx := context.Background()

	for _, in := range []struct {
		clientID, contact string
	}{
		{tenant.ID, "first"},
		{tenant.ID, "second"},
		{other.ID, "foreign"},
	} {
		if _, err := s.Record(ctx, in.clientID, ManualLog{ContactID: in.contact, StatusHTTP: 200}); err != nil {
			t.Fatalf("Record: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	raw, err := s.Export(ctx, tenant.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	// newest first
	if rows[1][1] != "second" || rows[2][1] != "first" {
		t.Fatalf("unexpected order: %v", rows[1:])
	}

	// a window in the future holds nothing
	raw, err = s.Export(ctx, tenant.ID, time.Now().Add(time.Hour), time.Time{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	f2, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f2.Close()
	if rows, _ := f2.GetRows(export.SheetName); len(rows) != 1 {
		t.Fatalf("expected only the header, got %d rows", len(rows))
	}
}
