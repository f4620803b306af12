package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

func openTempDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "nope", "chatbot.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error for %q, got db=%v", bad, db)
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOpenSQLite_Pragmas(t *testing.T) {
	db := openTempDB(t, "pragmas.db")

	var mode string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if strings.ToLower(mode) != "wal" {
		t.Fatalf("journal_mode=%q", mode)
	}

	// synchronous=NORMAL reads back as 1.
	for pragma, want := range map[string]int{
		"synchronous":  1,
		"foreign_keys": 1,
		"busy_timeout": 5000,
	} {
		var got int
		if err := db.Raw("PRAGMA " + pragma + ";").Row().Scan(&got); err != nil {
			t.Fatalf("%s: %v", pragma, err)
		}
		if got != want {
			t.Fatalf("%s=%d want %d", pragma, got, want)
		}
	}

	sqlDB, _ := db.DB()
	if got := sqlDB.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Fatalf("MaxOpenConnections=%d", got)
	}
}

func TestAutoMigrate_CreatesSchema(t *testing.T) {
	db := openTempDB(t, "schema.db")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// Running it again must be a no-op.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate (again): %v", err)
	}

	m := db.Migrator()
	for _, tbl := range []any{
		&domain.Client{}, &domain.Origin{}, &domain.Chat{}, &domain.Message{},
		&domain.HotelRoom{}, &domain.IntegrationLog{}, &domain.SystemLog{},
		&domain.ContextSnippet{}, &domain.SystemPrompt{}, &domain.Idempotency{},
	} {
		if !m.HasTable(tbl) {
			t.Fatalf("missing table for %T", tbl)
		}
	}

	now := time.Now().UTC()
	cl := &domain.Client{ID: "cl1", Name: "Hotel Serra", Email: "serra@example.com", Token: "tok", Active: true}
	if err := db.Create(cl).Error; err != nil {
		t.Fatalf("insert client: %v", err)
	}
	chat := &domain.Chat{ID: "c1", ClientID: "cl1", ContactID: "555", Status: domain.ChatActive, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("insert chat: %v", err)
	}
	msg := &domain.Message{ID: "m1", ClientID: "cl1", ChatID: &chat.ID, ContactID: "555", ContentInput: "oi", Timestamp: now}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("insert message: %v", err)
	}

	// Chat statuses are constrained at the schema level.
	bad := &domain.Chat{ID: "c2", ClientID: "cl1", ContactID: "555", Status: "deleted"}
	if err := db.Create(bad).Error; err == nil {
		t.Fatalf("expected check constraint to reject status %q", bad.Status)
	}
}

func TestEnableTracing_RegistersPlugin(t *testing.T) {
	db := openTempDB(t, "trace.db")
	if err := EnableTracing(db); err != nil {
		t.Fatalf("EnableTracing: %v", err)
	}
	if len(db.Config.Plugins) == 0 {
		t.Fatalf("expected plugin to be registered")
	}
}
