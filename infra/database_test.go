package infra

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewDBConnection_SQLite(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "in memory", url: ""},
		{name: "file", url: "sqlite://" + filepath.Join(t.TempDir(), "corebank.db")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := NewDBConnection(&config.DB{URL: tt.url, Migrate: true}, "test", discard)
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlDB.Close() })

			assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
			for _, table := range []string{"accounts", "transactions", "activities", "outbox_events"} {
				assert.True(t, db.Migrator().HasTable(table), table)
			}
		})
	}
}

func TestNewDBConnection_SkipsMigration(t *testing.T) {
	db, err := NewDBConnection(&config.DB{Migrate: false}, "test", discard)
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable("accounts"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/x.db", sqliteDSN("sqlite:///tmp/x.db"))
	mem := sqliteDSN("")
	assert.True(t, strings.HasPrefix(mem, "file:"))
	assert.Contains(t, mem, "mode=memory")
	assert.NotEqual(t, mem, sqliteDSN(""), "every in-memory database is private")
}
