// Package services – AuditService
//
// AuditService persists integration logs: the rows written by the upstream
// gateway for every call, rows posted manually by automation flows, and the
// spreadsheet export operators download.
package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/export"
	"github.com/fndrorato/chatbot-backend/internal/repo"
)

// UnknownContact is stored when a log carries no contact ID.
const UnknownContact = "unknown"

// MaxExportRows caps a single export.
const MaxExportRows = 50000

// AuditService writes and exports integration logs. It implements
// upstream.AuditSink.
type AuditService struct {
	DB *gorm.DB
	// Location renders export timestamps; UTC when nil.
	Location *time.Location
}

// NewAuditService constructs an AuditService.
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// RecordIntegration stores one upstream call.
func (s *AuditService) RecordIntegration(ctx context.Context, l *domain.IntegrationLog) error {
	return repo.CreateIntegrationLog(ctx, s.DB, l)
}

// ManualLog is an integration log posted by an external flow.
//
// Fields:
//   - Content / Response: arbitrary JSON values, stored as given.
//   - StatusHTTP: status the flow observed.
type ManualLog struct {
	ContactID  string
	Origin     string
	To         string
	Content    json.RawMessage
	Response   json.RawMessage
	StatusHTTP int
}

// Record stores a manual log for the tenant and returns the new row.
func (s *AuditService) Record(ctx context.Context, clientID string, in ManualLog) (*domain.IntegrationLog, error) {
	tr := otel.Tracer("services/AuditService")
	ctx, span := tr.Start(ctx, "Record",
		trace.WithAttributes(attribute.Int("status_http", in.StatusHTTP)),
	)
	defer span.End()

	contact := strings.TrimSpace(in.ContactID)
	if contact == "" {
		contact = UnknownContact
	}
	l := &domain.IntegrationLog{
		ClientID:   clientID,
		ContactID:  contact,
		Origin:     in.Origin,
		To:         in.To,
		Content:    jsonOrNull(in.Content),
		Response:   jsonOrNull(in.Response),
		StatusHTTP: in.StatusHTTP,
	}
	if err := repo.CreateIntegrationLog(ctx, s.DB, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Export renders the tenant's integration logs created in [from, to) as an
// XLSX workbook, newest first. Zero bounds are open.
func (s *AuditService) Export(ctx context.Context, clientID string, from, to time.Time) ([]byte, error) {
	tr := otel.Tracer("services/AuditService")
	ctx, span := tr.Start(ctx, "Export",
		trace.WithAttributes(attribute.String("tenant.id", clientID)),
	)
	defer span.End()

	logs, err := repo.ListIntegrationLogs(ctx, s.DB, clientID, repo.LogFilter{From: from, To: to, Limit: MaxExportRows})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(logs)))
	return export.IntegrationLogsXLSX(logs, s.Location)
}

func jsonOrNull(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || !json.Valid(raw) {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
