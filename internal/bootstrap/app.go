package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docrag/internal/ai"
	appsvc "docrag/internal/app"
	"docrag/internal/cache"
	"docrag/internal/config"
	"docrag/internal/platform/database"
	rabbitmqClient "docrag/internal/platform/rabbitmq"
	redisClient "docrag/internal/platform/redis"
	"docrag/internal/repository"
	"docrag/internal/vectorindex"
	"docrag/internal/worker"
)

const sessionKeyPrefix = "docrag:session:"

type App struct {
	Config           *config.Config
	DB               *gorm.DB
	Redis            *redis.Client
	MQConn           *amqp.Connection
	TranscriptWorker *worker.TranscriptPersistWorker

	Index        *vectorindex.FlatL2
	Auth         *appsvc.AuthService
	Documents    *appsvc.DocumentService
	Conversation *appsvc.ConversationService

	StartedAt time.Time
}

// New wires the service against the hosted OpenAI-compatible endpoint.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := ai.NewOpenAICompatibleClient(ai.Config{
		BaseURL:            cfg.LLM.BaseURL,
		APIKey:             cfg.LLM.APIKey,
		Model:              cfg.LLM.Model,
		EmbeddingModel:     cfg.LLM.EmbeddingModel,
		Timeout:            time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		EmbeddingBatchSize: cfg.RAG.EmbeddingBatchSize,
	})
	if err != nil {
		return nil, err
	}
	return NewWithModels(ctx, cfg, client, client)
}

// NewWithModels wires the service around the given chat model and embedder.
// Optional backends are connected only when configured.
func NewWithModels(ctx context.Context, cfg *config.Config, llm ai.ChatModel, embedder ai.Embedder) (*App, error) {
	if llm == nil || embedder == nil {
		return nil, fmt.Errorf("chat model and embedder are required")
	}
	if cfg.LLM.APIKey == config.DefaultAPIKey {
		slog.Warn("llm api key is the placeholder value; hosted calls will be rejected")
	}

	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.connect(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	var users appsvc.UserStore = repository.NewMemoryUserRepository()
	if a.DB != nil {
		users = repository.NewUserRepository(a.DB)
	}
	var sessions appsvc.SessionStore = cache.NewMemorySessionCache()
	if cfg.Auth.SessionBackend == "redis" {
		sessions = cache.NewRedisSessionCache(a.Redis, sessionKeyPrefix)
	}
	a.Auth = appsvc.NewAuthService(
		users,
		sessions,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)

	a.Index = vectorindex.NewFlatL2(0)
	documents, err := appsvc.NewDocumentService(embedder, a.Index, appsvc.DocumentOptions{
		UploadDir:    cfg.RAG.UploadDir,
		ChunkSize:    cfg.RAG.ChunkSize,
		ChunkOverlap: cfg.RAG.ChunkOverlap,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Documents = documents

	var publisher appsvc.TranscriptPublisher
	if a.MQConn != nil {
		publisher = rabbitmqClient.NewTranscriptPublisher(a.MQConn, cfg.RabbitMQ.TranscriptQueue)
	}
	a.Conversation = appsvc.NewConversationService(
		llm,
		appsvc.NewRetriever(embedder, a.Index),
		publisher,
		cfg.RAG.MaxHistory,
	)

	if a.MQConn != nil && a.DB != nil {
		a.TranscriptWorker = worker.NewTranscriptPersistWorker(
			a.MQConn,
			repository.NewTranscriptRepository(a.DB),
			cfg.RabbitMQ.TranscriptQueue,
		)
		if err := a.TranscriptWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start transcript worker failed: %w", err)
		}
	} else if a.MQConn != nil {
		slog.Warn("rabbitmq configured without a database; transcripts are published but not persisted here")
	}

	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	cfg := a.Config
	if cfg.Database.Driver != "" {
		db, err := database.Open(ctx, cfg.Database.Driver, cfg.DSN())
		if err != nil {
			return err
		}
		a.DB = db
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	if cfg.Redis.Addr != "" {
		client, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.Redis = client
	}

	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.TranscriptQueue)
		if err != nil {
			return err
		}
		a.MQConn = conn
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.TranscriptWorker != nil {
		a.TranscriptWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
