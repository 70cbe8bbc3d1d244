package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsvc "docrag/internal/app"
	"docrag/internal/config"
	"docrag/internal/model"
)

type stubModel struct{}

func (stubModel) Complete(context.Context, []model.ChatMessage) (string, error) { return "ok", nil }

type stubEmbedder struct{}

func (stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1}
	}
	return out, nil
}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

func TestNewWithModelsInMemory(t *testing.T) {
	cfg := config.Default()
	cfg.RAG.UploadDir = filepath.Join(t.TempDir(), "docs")

	a, err := NewWithModels(context.Background(), cfg, stubModel{}, stubEmbedder{})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Redis)
	assert.Nil(t, a.MQConn)
	assert.NotNil(t, a.Auth)
	assert.NotNil(t, a.Documents)
	assert.NotNil(t, a.Conversation)
	assert.Equal(t, 0, a.Index.Len())
}

func TestNewWithModelsSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.RAG.UploadDir = filepath.Join(dir, "docs")
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(dir, "docrag.db")

	a, err := NewWithModels(context.Background(), cfg, stubModel{}, stubEmbedder{})
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.DB)

	require.NoError(t, a.Auth.Register(appsvc.Credentials{Username: "alice", Password: "pw"}))
	user, err := a.Auth.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw", user.Password)
}

func TestNewRequiresModels(t *testing.T) {
	_, err := NewWithModels(context.Background(), config.Default(), nil, stubEmbedder{})
	assert.Error(t, err)
}

func TestNewBuildsOpenAIClient(t *testing.T) {
	cfg := config.Default()
	cfg.RAG.UploadDir = filepath.Join(t.TempDir(), "docs")

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}
