package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"docrag/internal/ai"
	"docrag/internal/model"
	"docrag/internal/pkg/pdfextract"
	"docrag/internal/vectorindex"
)

const (
	defaultChunkSize    = 500
	defaultChunkOverlap = 0
)

// VectorIndex is the shared nearest-neighbour index chunks are added to.
type VectorIndex interface {
	Add(chunks ...model.Chunk) error
	Len() int
	Search(query []float32, k int) ([]vectorindex.Result, error)
}

// TextExtractor pulls plain text out of an uploaded file.
type TextExtractor func(r io.Reader) (string, error)

type DocumentService struct {
	uploadDir    string
	embedder     ai.Embedder
	index        VectorIndex
	extract      TextExtractor
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger

	mu    sync.RWMutex
	files map[string]string // stored name -> original filename
}

type DocumentOptions struct {
	UploadDir    string
	ChunkSize    int
	ChunkOverlap int
	Extractor    TextExtractor
}

func NewDocumentService(embedder ai.Embedder, index VectorIndex, opts DocumentOptions) (*DocumentService, error) {
	if opts.UploadDir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(opts.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = defaultChunkOverlap
	}
	if opts.Extractor == nil {
		opts.Extractor = pdfextract.ExtractText
	}
	return &DocumentService{
		uploadDir:    opts.UploadDir,
		embedder:     embedder,
		index:        index,
		extract:      opts.Extractor,
		chunkSize:    opts.ChunkSize,
		chunkOverlap: opts.ChunkOverlap,
		logger:       slog.Default().With("component", "documents"),
		files:        make(map[string]string),
	}, nil
}

// Upload extracts the text of r, writes it under a fresh id and remembers the
// original filename. It returns the id.
func (s *DocumentService) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	text, err := s.extract(r)
	if err != nil {
		return "", fmt.Errorf("extract document text failed: %w", err)
	}

	rec := model.DocumentRecord{ID: uuid.NewString(), Filename: filename}
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir failed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, rec.StoredName()), []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write document failed: %w", err)
	}

	s.mu.Lock()
	s.files[rec.StoredName()] = rec.Filename
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "document stored", "doc_id", rec.ID, "filename", rec.Filename, "chars", len(text))
	return rec.ID, nil
}

// Process splits a stored document into chunks, embeds them and adds them to
// the shared index.
func (s *DocumentService) Process(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	filename, ok := s.files[model.StoredName(id)]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	raw, err := os.ReadFile(filepath.Join(s.uploadDir, model.StoredName(id)))
	if err != nil {
		return "", fmt.Errorf("read document failed: %w", err)
	}

	chunks := chunkText(string(raw), s.chunkSize, s.chunkOverlap)
	if len(chunks) > 0 {
		vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
		if err != nil {
			return "", err
		}
		if len(vectors) != len(chunks) {
			return "", errors.New("embedding count mismatch")
		}
		indexed := make([]model.Chunk, len(chunks))
		for i := range chunks {
			indexed[i] = model.Chunk{Content: chunks[i], Embedding: vectors[i]}
		}
		if err := s.index.Add(indexed...); err != nil {
			return "", fmt.Errorf("index chunks failed: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "document indexed", "doc_id", id, "chunks", len(chunks))
	return fmt.Sprintf("Document processed successfully with docId: %s and filename: %s", id, filename), nil
}

// List returns original filenames of documents uploaded by this process, in
// directory order, windowed by offset and limit.
func (s *DocumentService) List(offset, limit int) ([]string, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return nil, fmt.Errorf("list upload dir failed: %w", err)
	}

	s.mu.RLock()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := s.files[e.Name()]; ok {
			names = append(names, name)
		}
	}
	s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= len(names) {
		return []string{}, nil
	}
	end := offset + limit
	if end > len(names) {
		end = len(names)
	}
	return names[offset:end], nil
}

// Get returns the stored text for id. Any file in the upload dir is served,
// including ones written by an earlier process.
func (s *DocumentService) Get(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return "", ErrDocumentNotFound
	}
	raw, err := os.ReadFile(filepath.Join(s.uploadDir, model.StoredName(id)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("read document failed: %w", err)
	}
	return string(raw), nil
}

// chunkText splits text into windows of size runes, each starting
// size-overlap runes after the previous one.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
		i += size - overlap
	}
	return chunks
}
