package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultAPIKey is the placeholder key used when neither the config file nor
// the environment provides one.
const DefaultAPIKey = "YOUR_API_KEY_HERE"

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	LLM      LLMConfig      `toml:"llm"`
	RAG      RAGConfig      `toml:"rag"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	CORS     CORSConfig     `toml:"cors"`
}

type AppConfig struct {
	Name     string `toml:"name"`
	Env      string `toml:"env"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	GinMode  string `toml:"gin_mode"`
	LogLevel string `toml:"log_level"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	JWTExpireMinute int    `toml:"jwt_expire_minute"`
	VerifySignature bool   `toml:"verify_signature"`
	SessionBackend  string `toml:"session_backend"`
}

type LLMConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type RAGConfig struct {
	UploadDir          string `toml:"upload_dir"`
	ChunkSize          int    `toml:"chunk_size"`
	ChunkOverlap       int    `toml:"chunk_overlap"`
	MaxHistory         int    `toml:"max_history"`
	EmbeddingBatchSize int    `toml:"embedding_batch_size"`
}

// DatabaseConfig selects the optional SQL backend. An empty driver keeps
// users in memory and disables transcript persistence.
type DatabaseConfig struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
	Path     string `toml:"path"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RabbitMQConfig struct {
	URL             string `toml:"url"`
	TranscriptQueue string `toml:"transcript_queue"`
}

type CORSConfig struct {
	AllowOrigins []string `toml:"allow_origins"`
}

// Load reads the TOML file at path (CONFIG_FILE when path is empty) if it
// exists and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getEnv("CONFIG_FILE", "configs/config.toml")
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// DSN returns the connection string for the configured database driver.
func (c *Config) DSN() string {
	switch c.Database.Driver {
	case "sqlite":
		return c.Database.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DB,
			c.Database.Params,
		)
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Auth.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session backend %q", c.Auth.SessionBackend)
	}
	if c.Auth.SessionBackend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("session backend redis requires redis.addr")
	}
	if c.RAG.ChunkSize <= 0 {
		return fmt.Errorf("rag.chunk_size must be positive")
	}
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("rag.chunk_overlap must be in [0, chunk_size)")
	}
	if c.RAG.MaxHistory <= 0 {
		return fmt.Errorf("rag.max_history must be positive")
	}
	return nil
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "docrag",
			Env:      "dev",
			Host:     "0.0.0.0",
			Port:     8000,
			GinMode:  "debug",
			LogLevel: "info",
		},
		Auth: AuthConfig{
			JWTSecret:       "secret",
			JWTExpireMinute: 15,
			VerifySignature: false,
			SessionBackend:  "memory",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKey:         DefaultAPIKey,
			Model:          "gpt-3.5-turbo",
			EmbeddingModel: "text-embedding-ada-002",
			TimeoutSeconds: 90,
		},
		RAG: RAGConfig{
			UploadDir:          "document_library",
			ChunkSize:          500,
			ChunkOverlap:       0,
			MaxHistory:         2,
			EmbeddingBatchSize: 64,
		},
		Database: DatabaseConfig{
			Driver: "",
			Host:   "127.0.0.1",
			Port:   3306,
			User:   "root",
			DB:     "docrag",
			Params: "parseTime=true&loc=Local&charset=utf8mb4",
			Path:   "docrag.db",
		},
		Redis: RedisConfig{
			Addr: "",
			DB:   0,
		},
		RabbitMQ: RabbitMQConfig{
			URL:             "",
			TranscriptQueue: "chat.transcript.persist",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.LogLevel = getEnv("LOGLEVEL", cfg.App.LogLevel)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireMinute = getEnvAsInt("JWT_EXPIRE_MINUTE", cfg.Auth.JWTExpireMinute)
	cfg.Auth.VerifySignature = getEnvAsBool("AUTH_VERIFY_SIGNATURE", cfg.Auth.VerifySignature)
	cfg.Auth.SessionBackend = getEnv("AUTH_SESSION_BACKEND", cfg.Auth.SessionBackend)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.EmbeddingModel = getEnv("LLM_EMBEDDING_MODEL", cfg.LLM.EmbeddingModel)
	cfg.LLM.TimeoutSeconds = getEnvAsInt("LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)

	cfg.RAG.UploadDir = getEnv("RAG_UPLOAD_DIR", cfg.RAG.UploadDir)
	cfg.RAG.ChunkSize = getEnvAsInt("RAG_CHUNK_SIZE", cfg.RAG.ChunkSize)
	cfg.RAG.ChunkOverlap = getEnvAsInt("RAG_CHUNK_OVERLAP", cfg.RAG.ChunkOverlap)
	cfg.RAG.MaxHistory = getEnvAsInt("RAG_MAX_HISTORY", cfg.RAG.MaxHistory)
	cfg.RAG.EmbeddingBatchSize = getEnvAsInt("RAG_EMBEDDING_BATCH_SIZE", cfg.RAG.EmbeddingBatchSize)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DB = getEnv("DB_NAME", cfg.Database.DB)
	cfg.Database.Params = getEnv("DB_PARAMS", cfg.Database.Params)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.TranscriptQueue = getEnv("RABBITMQ_TRANSCRIPT_QUEUE", cfg.RabbitMQ.TranscriptQueue)

	if raw, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok && strings.TrimSpace(raw) != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowOrigins = origins
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
