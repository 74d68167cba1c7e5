package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/sousie/backend/internal/models"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

// RecipeLogService searches the menus recorded by ChatService
type RecipeLogService struct {
	db *gorm.DB
}

func NewRecipeLogService(db *gorm.DB) *RecipeLogService {
	return &RecipeLogService{db: db}
}

// Similar returns the user's logged menus whose prompts embed closest to
// prompt. Nearest-neighbour ordering needs pgvector; on other databases the
// newest entries are returned instead.
func (s *RecipeLogService) Similar(ctx context.Context, userID uuid.UUID, prompt string, limit int) ([]*models.RecipeLog, error) {
	switch {
	case limit <= 0:
		limit = defaultSimilarLimit
	case limit > maxSimilarLimit:
		limit = maxSimilarLimit
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID).Limit(limit)
	if s.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{EmbedPrompt(prompt)}},
		})
	} else {
		query = query.Order("created_at DESC")
	}

	var logs []*models.RecipeLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipe log: %w", err)
	}
	return logs, nil
}
