package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/sousie/backend/internal/menu"
	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/prompts"
	"github.com/pageza/sousie/backend/internal/provider"
	"github.com/pageza/sousie/backend/internal/types"
)

// MenuStore holds the latest menu per conversation
type MenuStore interface {
	Save(ctx context.Context, userID, conversationID uuid.UUID, m *menu.Menu) error
	Get(ctx context.Context, userID, conversationID uuid.UUID) (*menu.Menu, error)
	Delete(ctx context.Context, userID, conversationID uuid.UUID) error
}

// IChatService defines the interface for conversation turns
type IChatService interface {
	Chat(ctx context.Context, userID, conversationID uuid.UUID, msgs []provider.Message, tpl prompts.Template) (*Turn, error)
	GenerateMenu(ctx context.Context, userID uuid.UUID, ingredients, cuisine string, quick bool) (*Turn, error)
	Menu(ctx context.Context, userID, conversationID uuid.UUID) (*menu.Menu, error)
	Reset(ctx context.Context, userID, conversationID uuid.UUID) error
}

// IAuthService defines the interface for token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, userID uuid.UUID, req *types.CreateFeedbackRequest) (*models.Feedback, error)
	Recent(ctx context.Context, userID uuid.UUID) ([]*models.Feedback, error)
}

// IHistoryService defines the interface for prompt history
type IHistoryService interface {
	LogPrompt(ctx context.Context, userID uuid.UUID, prompt, response string) (*models.PromptLog, error)
	ListPrompts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PromptLog, error)
}

// ISurpriseService defines the interface for random meals
type ISurpriseService interface {
	RandomMeal(ctx context.Context) (*Meal, error)
}

var (
	_ IChatService     = (*ChatService)(nil)
	_ IAuthService     = (*AuthService)(nil)
	_ IFeedbackService = (*FeedbackService)(nil)
	_ IHistoryService  = (*HistoryService)(nil)
	_ ISurpriseService = (*SurpriseService)(nil)
	_ MenuStore        = (*MenuCache)(nil)
)

// IRecipeLogService defines the interface for searching logged menus
type IRecipeLogService interface {
	Similar(ctx context.Context, userID uuid.UUID, prompt string, limit int) ([]*models.RecipeLog, error)
}

var _ IRecipeLogService = (*RecipeLogService)(nil)
