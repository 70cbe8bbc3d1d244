package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"docrag/internal/ai"
	"docrag/internal/model"
)

const (
	SystemInstruction = "You are a RAG application which receives a set of texts similar to user prompt, and you answer the question using those set of texts. You may provide inputs from your side as well. "

	defaultMaxHistory = 2
)

type TranscriptPublisher interface {
	Publish(ctx context.Context, t model.Transcript) error
}

// ConversationService keeps one rolling history for the whole process and
// answers queries against the hosted model.
type ConversationService struct {
	llm        ai.ChatModel
	retriever  *Retriever
	publisher  TranscriptPublisher
	maxHistory int
	now        func() time.Time
	logger     *slog.Logger

	mu      sync.Mutex
	history []model.ChatMessage
}

func NewConversationService(llm ai.ChatModel, retriever *Retriever, publisher TranscriptPublisher, maxHistory int) *ConversationService {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &ConversationService{
		llm:        llm,
		retriever:  retriever,
		publisher:  publisher,
		maxHistory: maxHistory,
		now:        time.Now,
		logger:     slog.Default().With("component", "conversation"),
	}
}

// Chat records query in the history, retrieves the closest chunk and asks the
// model with [system, context, ...history].
func (s *ConversationService) Chat(ctx context.Context, query string) (string, error) {
	s.mu.Lock()
	s.history = append(s.history, model.UserMessage(query))
	for len(s.history) > s.maxHistory {
		s.history = s.history[1:]
	}
	history := append([]model.ChatMessage(nil), s.history...)
	s.mu.Unlock()

	retrieved, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", err
	}

	messages := make([]model.ChatMessage, 0, len(history)+2)
	messages = append(messages, model.SystemMessage(SystemInstruction), model.UserMessage(retrieved))
	messages = append(messages, history...)

	answer, err := s.llm.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	s.publish(ctx, model.TranscriptKindChat, query, answer)
	return answer, nil
}

// NewChat drops the history, starts over with query and skips retrieval.
func (s *ConversationService) NewChat(ctx context.Context, query string) (string, error) {
	s.mu.Lock()
	s.history = []model.ChatMessage{model.UserMessage(query)}
	s.mu.Unlock()

	messages := []model.ChatMessage{
		model.SystemMessage(SystemInstruction),
		model.UserMessage(query),
	}
	answer, err := s.llm.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	s.publish(ctx, model.TranscriptKindNewChat, query, answer)
	return answer, nil
}

func (s *ConversationService) History() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.history...)
}

func (s *ConversationService) publish(ctx context.Context, kind, query, answer string) {
	if s.publisher == nil {
		return
	}
	t := model.Transcript{Kind: kind, Query: query, Answer: answer, CreatedAt: s.now().UTC()}
	if err := s.publisher.Publish(ctx, t); err != nil {
		s.logger.WarnContext(ctx, "publish transcript failed", "kind", kind, "error", err)
	}
}
