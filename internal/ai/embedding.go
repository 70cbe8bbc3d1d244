package ai

import (
	"context"
	"fmt"
)

// EmbedDocuments returns one vector per text, in order. Batching is handled
// by the underlying embedder.
func (c *OpenAICompatibleClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	c.logger.Debug("embedding documents", "count", len(texts))
	vectors, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(vectors))
	}
	return vectors, nil
}

func (c *OpenAICompatibleClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vector, err := c.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return vector, nil
}
