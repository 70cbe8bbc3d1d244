package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, 0, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 2, cfg.RAG.MaxHistory)
	assert.Equal(t, 15, cfg.Auth.JWTExpireMinute)
	assert.Equal(t, "memory", cfg.Auth.SessionBackend)
	assert.False(t, cfg.Auth.VerifySignature)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTPAddr())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9100

[rag]
upload_dir = "/tmp/docs"
max_history = 4

[database]
driver = "sqlite"
path = "/tmp/docrag.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("RAG_MAX_HISTORY", "3")
	t.Setenv("LOGLEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.App.Port)
	assert.Equal(t, "/tmp/docs", cfg.RAG.UploadDir)
	assert.Equal(t, 3, cfg.RAG.MaxHistory)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/tmp/docrag.db", cfg.DSN())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowOrigins)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *Config){
		"driver":         func(c *Config) { c.Database.Driver = "oracle" },
		"session":        func(c *Config) { c.Auth.SessionBackend = "memcached" },
		"redis addr":     func(c *Config) { c.Auth.SessionBackend = "redis" },
		"chunk size":     func(c *Config) { c.RAG.ChunkSize = 0 },
		"chunk overlap":  func(c *Config) { c.RAG.ChunkOverlap = 500 },
		"history length": func(c *Config) { c.RAG.MaxHistory = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "mysql"
	cfg.Database.Password = "pw"
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/docrag?parseTime=true&loc=Local&charset=utf8mb4", cfg.DSN())
}
