package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sousie/backend/internal/models"
)

const defaultHistoryLimit = 50

// HistoryService stores the prompt history shown on the dashboard
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

func (s *HistoryService) LogPrompt(ctx context.Context, userID uuid.UUID, prompt, response string) (*models.PromptLog, error) {
	entry := &models.PromptLog{
		UserID:   userID,
		Prompt:   prompt,
		Response: response,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log prompt: %w", err)
	}
	return entry, nil
}

// ListPrompts returns the user's prompts newest first. A limit <= 0 means
// the default page size.
func (s *HistoryService) ListPrompts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PromptLog, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}

	var prompts []*models.PromptLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}
