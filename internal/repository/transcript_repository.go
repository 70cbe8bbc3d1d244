package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docrag/internal/model"
)

type TranscriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

func (r *TranscriptRepository) Create(t *model.Transcript) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("create transcript failed: %w", err)
	}
	return nil
}

// ListRecent returns the newest transcripts first.
func (r *TranscriptRepository) ListRecent(limit int) ([]model.Transcript, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var list []model.Transcript
	if err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list transcripts failed: %w", err)
	}
	return list, nil
}
