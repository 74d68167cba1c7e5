package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// RecipeLog keeps every generated menu with the prompt that produced it.
type RecipeLog struct {
	ID             uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	ConversationID uuid.UUID       `gorm:"type:uuid;index" json:"conversation_id"`
	Prompt         string          `gorm:"type:text;not null" json:"prompt"`
	Cuisine        string          `json:"cuisine,omitempty"`
	Menu           string          `gorm:"type:text;not null" json:"menu"`
	Embedding      pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (r *RecipeLog) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
