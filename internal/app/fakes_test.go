package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"docrag/internal/model"
)

// letterEmbedder maps text to counts of x, y and z so tests can steer which
// chunk is nearest.
type letterEmbedder struct {
	mu          sync.Mutex
	docCalls    int
	queryCalls  int
	failQueries bool
}

func (e *letterEmbedder) vector(text string) []float32 {
	return []float32{
		float32(strings.Count(text, "x")),
		float32(strings.Count(text, "y")),
		float32(strings.Count(text, "z")),
	}
}

func (e *letterEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.docCalls++
	e.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *letterEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.queryCalls++
	e.mu.Unlock()
	if e.failQueries {
		return nil, errors.New("embeddings unavailable")
	}
	return e.vector(text), nil
}

type recordingModel struct {
	mu      sync.Mutex
	calls   [][]model.ChatMessage
	answer  string
	failure error
}

func (m *recordingModel) Complete(_ context.Context, messages []model.ChatMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]model.ChatMessage(nil), messages...))
	if m.failure != nil {
		return "", m.failure
	}
	return m.answer, nil
}

func (m *recordingModel) last() []model.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

type recordingPublisher struct {
	mu          sync.Mutex
	transcripts []model.Transcript
	failure     error
}

func (p *recordingPublisher) Publish(_ context.Context, t model.Transcript) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failure != nil {
		return p.failure
	}
	p.transcripts = append(p.transcripts, t)
	return nil
}
