package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/model"
	"docrag/internal/platform/database"
	"docrag/internal/repository"
)

func writeConfig(t *testing.T, dbPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[database]\ndriver = \"sqlite\"\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTranscriptsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "docrag.db")
	db, err := database.Open(context.Background(), "sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	repo := repository.NewTranscriptRepository(db)
	require.NoError(t, repo.Create(&model.Transcript{Kind: model.TranscriptKindChat, Query: "q1", Answer: "a1", CreatedAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, repo.Create(&model.Transcript{Kind: model.TranscriptKindNewChat, Query: "q2", Answer: "a2", CreatedAt: time.Now()}))
	require.NoError(t, database.Close(db))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err = app.Run([]string{"docrag", "--config", writeConfig(t, dbPath), "--log-level", "error", "transcripts", "--limit", "1"})
	require.NoError(t, err)

	var list []model.Transcript
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "q2", list[0].Query)
}

func TestTranscriptsCommandNeedsDatabase(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"docrag", "--config", filepath.Join(t.TempDir(), "missing.toml"), "transcripts"})
	assert.Error(t, err)
}
