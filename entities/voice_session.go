package entities

import (
	"github.com/google/uuid"
)

type VoiceSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string    `gorm:"index" json:"user_id"`
	AudioURL   string    `json:"audio_url,omitempty"`
	AudioHash  string    `gorm:"size:64;index" json:"audio_hash"`
	Transcript string    `gorm:"type:text" json:"transcript"`
	Source     string    `json:"source"` // "cache", "speech"
	Status     string    `json:"status"` // "Processed", "Failed"
	Error      string    `gorm:"type:text" json:"error,omitempty"`

	Timestamp
}
