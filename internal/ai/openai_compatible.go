package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docrag/internal/model"
)

var ErrEmptyCompletion = errors.New("empty llm choices")

// ChatModel produces a reply for an ordered message list.
type ChatModel interface {
	Complete(ctx context.Context, messages []model.ChatMessage) (string, error)
}

// Embedder turns text into vectors. Documents and queries share one space.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	BaseURL            string
	APIKey             string
	Model              string
	EmbeddingModel     string
	Timeout            time.Duration
	EmbeddingBatchSize int
}

// OpenAICompatibleClient talks to any OpenAI-compatible endpoint for chat
// completions and embeddings.
type OpenAICompatibleClient struct {
	llm      *openai.LLM
	embedder embeddings.Embedder
	model    string
	logger   *slog.Logger
}

func NewOpenAICompatibleClient(cfg Config) (*OpenAICompatibleClient, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("llm model is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client failed: %w", err)
	}

	embedOpts := []embeddings.Option{embeddings.WithStripNewLines(true)}
	if cfg.EmbeddingBatchSize > 0 {
		embedOpts = append(embedOpts, embeddings.WithBatchSize(cfg.EmbeddingBatchSize))
	}
	embedder, err := embeddings.NewEmbedder(llm, embedOpts...)
	if err != nil {
		return nil, fmt.Errorf("create embedder failed: %w", err)
	}

	return &OpenAICompatibleClient{
		llm:      llm,
		embedder: embedder,
		model:    cfg.Model,
		logger:   slog.Default().With("component", "llm-client"),
	}, nil
}

// Complete sends messages to the chat completions endpoint and returns the
// first choice's text unchanged.
func (c *OpenAICompatibleClient) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role, err := messageType(m.Role)
		if err != nil {
			return "", err
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	c.logger.Debug("chat completion request", "model", c.model, "messages", len(messages))
	resp, err := c.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

func messageType(role model.Role) (schema.ChatMessageType, error) {
	switch role {
	case model.RoleSystem:
		return schema.ChatMessageTypeSystem, nil
	case model.RoleUser:
		return schema.ChatMessageTypeHuman, nil
	case model.RoleAssistant:
		return schema.ChatMessageTypeAI, nil
	default:
		return "", fmt.Errorf("unknown chat role %q", role)
	}
}
