package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "docrag.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("transcripts"))
}

func TestOpenUnreachableMySQL(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root:pw@tcp(127.0.0.1:1)/docrag?timeout=1s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping mysql failed")
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.Error(t, err)
}
