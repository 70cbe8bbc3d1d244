package model

import "time"

const (
	TranscriptKindChat    = "chat"
	TranscriptKindNewChat = "new_chat"
)

// Transcript is one answered chat turn, persisted for audit.
type Transcript struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:16;not null;index" json:"kind"`
	Query     string    `gorm:"type:text;not null" json:"query"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
