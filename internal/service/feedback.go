package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/types"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// RecentFeedbackLimit is how many entries Recent returns.
const RecentFeedbackLimit = 3

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, userID uuid.UUID, req *types.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	feedback := &models.Feedback{
		UserID:   userID,
		Prompt:   req.Prompt,
		Response: req.Response,
		Rating:   req.Rating,
	}
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

// Recent returns the user's last three feedback entries, newest first
func (s *FeedbackService) Recent(ctx context.Context, userID uuid.UUID) ([]*models.Feedback, error) {
	var feedback []*models.Feedback
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(RecentFeedbackLimit).
		Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
