package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/vectorindex"
)

func plainText(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	return string(raw), err
}

func newTestDocuments(t *testing.T) (*DocumentService, *vectorindex.FlatL2, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "library")
	index := vectorindex.NewFlatL2(0)
	svc, err := NewDocumentService(&letterEmbedder{}, index, DocumentOptions{
		UploadDir: dir,
		ChunkSize: 500,
		Extractor: plainText,
	})
	require.NoError(t, err)
	return svc, index, dir
}

func TestNewDocumentServiceCreatesUploadDir(t *testing.T) {
	svc, _, dir := newTestDocuments(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	names, err := svc.List(0, 10)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUploadStoresExtractedText(t *testing.T) {
	svc, _, dir := newTestDocuments(t)

	id, err := svc.Upload(context.Background(), "report.pdf", strings.NewReader("hello world"))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, id+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(raw))

	text, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestProcessIndexesChunks(t *testing.T) {
	svc, index, _ := newTestDocuments(t)
	ctx := context.Background()

	id, err := svc.Upload(ctx, "long.pdf", strings.NewReader(strings.Repeat("x", 1200)))
	require.NoError(t, err)

	msg, err := svc.Process(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Document processed successfully with docId: "+id+" and filename: long.pdf", msg)
	assert.Equal(t, 3, index.Len())

	_, err = svc.Process(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestProcessEmptyDocument(t *testing.T) {
	svc, index, _ := newTestDocuments(t)
	ctx := context.Background()

	id, err := svc.Upload(ctx, "blank.pdf", strings.NewReader(""))
	require.NoError(t, err)
	_, err = svc.Process(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}

func TestListPaginatesKnownDocuments(t *testing.T) {
	svc, _, dir := newTestDocuments(t)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_, err := svc.Upload(ctx, name, strings.NewReader(name))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, uuid.NewString()+".pdf"), []byte("stale"), 0o644))

	all, err := svc.List(0, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf", "c.pdf"}, all)

	page, err := svc.List(1, 1)
	require.NoError(t, err)
	assert.Equal(t, all[1:2], page)

	past, err := svc.List(5, 10)
	require.NoError(t, err)
	assert.Empty(t, past)

	none, err := svc.List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetUnknownDocument(t *testing.T) {
	svc, _, dir := newTestDocuments(t)

	_, err := svc.Get(uuid.NewString())
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.pdf"), []byte("s"), 0o644))
	_, err = svc.Get("../secret")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestChunkText(t *testing.T) {
	assert.Nil(t, chunkText("", 500, 0))
	assert.Equal(t, []string{"abc", "def", "g"}, chunkText("abcdefg", 3, 0))
	assert.Equal(t, []string{"abcd", "cdef", "efg"}, chunkText("abcdefg", 4, 2))
	assert.Equal(t, []string{"héll", "ö"}, chunkText("héllö", 4, 0))
}
