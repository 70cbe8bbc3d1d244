// Package vectorindex holds embeddings in process and answers exact
// nearest-neighbour queries by squared L2 distance.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"docrag/internal/model"
)

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

type Result struct {
	Chunk    model.Chunk
	Distance float32
}

// FlatL2 is a brute-force index. Dimension is fixed by the first Add unless
// given up front.
type FlatL2 struct {
	mu        sync.RWMutex
	dimension int
	chunks    []model.Chunk
}

func NewFlatL2(dimension int) *FlatL2 {
	return &FlatL2{dimension: dimension}
}

func (x *FlatL2) Add(chunks ...model.Chunk) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	dim := x.dimension
	for _, c := range chunks {
		if dim == 0 {
			dim = len(c.Embedding)
		}
		if len(c.Embedding) == 0 || len(c.Embedding) != dim {
			return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, dim, len(c.Embedding))
		}
	}
	x.dimension = dim
	x.chunks = append(x.chunks, chunks...)
	return nil
}

func (x *FlatL2) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.chunks)
}

func (x *FlatL2) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dimension
}

// Search returns up to k results ordered by ascending distance. Equal
// distances keep insertion order.
func (x *FlatL2) Search(query []float32, k int) ([]Result, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if k <= 0 || len(x.chunks) == 0 {
		return nil, nil
	}
	if len(query) != x.dimension {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, x.dimension, len(query))
	}

	results := make([]Result, len(x.chunks))
	for i, c := range x.chunks {
		results[i] = Result{Chunk: c, Distance: squaredL2(query, c.Embedding)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
