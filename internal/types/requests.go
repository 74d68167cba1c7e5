package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/sousie/backend/internal/menu"
	"github.com/pageza/sousie/backend/internal/provider"
)

// ChatRequest is one chat turn. Messages is the whole thread so far.
type ChatRequest struct {
	ConversationID *uuid.UUID         `json:"conversation_id"`
	Messages       []provider.Message `json:"messages" binding:"required,min=1,dive"`
	Template       string             `json:"template" binding:"omitempty,oneof=chat surprise"`
}

// SurpriseRequest asks for surprise menus on top of an optional thread.
type SurpriseRequest struct {
	ConversationID *uuid.UUID         `json:"conversation_id"`
	Messages       []provider.Message `json:"messages" binding:"omitempty,dive"`
}

// GenerateMenuRequest builds a menu from what the user has on hand.
type GenerateMenuRequest struct {
	Ingredients string `json:"ingredients" binding:"required,max=2000"`
	Cuisine     string `json:"cuisine" binding:"max=100"`
	Quick       bool   `json:"quick"`
}

// TurnResponse is returned by every endpoint that calls the model. Menu is
// null when nothing could be derived from the reply.
type TurnResponse struct {
	ConversationID uuid.UUID  `json:"conversation_id"`
	Reply          string     `json:"reply"`
	Menu           *menu.Menu `json:"menu"`
}

// MaxReplyLength bounds the reply accepted by the public menu parser, in
// characters.
const MaxReplyLength = 200000

// ParseMenuRequest runs a raw reply through the normalizer.
type ParseMenuRequest struct {
	Reply string `json:"reply" binding:"required,max=200000"`
	Shape string `json:"shape" binding:"omitempty,oneof=object array"`
}

type MenuResponse struct {
	Menu *menu.Menu `json:"menu"`
}

// Feedback API types
type CreateFeedbackRequest struct {
	Prompt   string `json:"prompt" binding:"required,max=8000"`
	Response string `json:"response" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
}

type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Prompt history types
type CreatePromptRequest struct {
	Prompt   string `json:"prompt" binding:"required,max=8000"`
	Response string `json:"response"`
}

type PromptResponse struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
