package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptLog is one entry of a user's prompt history.
type PromptLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Response  string    `gorm:"type:text" json:"response"`
}

func (p *PromptLog) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
