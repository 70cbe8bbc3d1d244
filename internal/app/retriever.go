package app

import (
	"context"

	"docrag/internal/ai"
)

// Retriever returns the single chunk closest to a query.
type Retriever struct {
	embedder ai.Embedder
	index    VectorIndex
}

func NewRetriever(embedder ai.Embedder, index VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve yields "" for an empty index without calling the embedder.
func (r *Retriever) Retrieve(ctx context.Context, query string) (string, error) {
	if r.index.Len() == 0 {
		return "", nil
	}
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", err
	}
	results, err := r.index.Search(vector, 1)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].Chunk.Content, nil
}
