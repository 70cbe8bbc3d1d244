package vectorindex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/model"
)

func chunk(content string, v ...float32) model.Chunk {
	return model.Chunk{Content: content, Embedding: v}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := NewFlatL2(0)
	res, err := idx.Search([]float32{1, 2}, 1)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchNearestFirst(t *testing.T) {
	idx := NewFlatL2(0)
	require.NoError(t, idx.Add(
		chunk("far", 10, 10),
		chunk("near", 1, 1),
		chunk("middle", 3, 3),
	))

	res, err := idx.Search([]float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "near", res[0].Chunk.Content)
	assert.Equal(t, float32(2), res[0].Distance)
	assert.Equal(t, "middle", res[1].Chunk.Content)
}

func TestSearchTieKeepsInsertionOrder(t *testing.T) {
	idx := NewFlatL2(2)
	require.NoError(t, idx.Add(chunk("first", 1, 0), chunk("second", 0, 1)))

	res, err := idx.Search([]float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "first", res[0].Chunk.Content)
}

func TestDimensionChecks(t *testing.T) {
	idx := NewFlatL2(0)
	require.NoError(t, idx.Add(chunk("a", 1, 2, 3)))
	assert.Equal(t, 3, idx.Dimension())

	assert.ErrorIs(t, idx.Add(chunk("b", 1, 2)), ErrDimensionMismatch)
	assert.ErrorIs(t, idx.Add(chunk("c")), ErrDimensionMismatch)
	assert.Equal(t, 1, idx.Len())

	_, err := idx.Search([]float32{1}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestConcurrentAddAndSearch(t *testing.T) {
	idx := NewFlatL2(2)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = idx.Add(chunk("c", float32(i), 0))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = idx.Search([]float32{0, 0}, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, idx.Len())
}
