package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatLog records one chat turn: the thread that was sent and the reply.
type ChatLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversation_id"`
	Template       string    `json:"template"`
	Thread         string    `gorm:"type:text" json:"thread"`
	Reply          string    `gorm:"type:text" json:"reply"`
	MenuFound      bool      `json:"menu_found"`
	// ParseError is the reason no menu was derived, empty when one was.
	ParseError string `json:"parse_error,omitempty"`
}

func (c *ChatLog) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}
