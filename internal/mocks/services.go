package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/service"
	"github.com/pageza/sousie/backend/internal/types"
)

// MockSurpriseService is a mock implementation of the SurpriseService interface
type MockSurpriseService struct {
	mock.Mock
}

func (m *MockSurpriseService) RandomMeal(ctx context.Context) (*service.Meal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Meal), args.Error(1)
}

// MockRecipeLogService is a mock implementation of the RecipeLogService interface
type MockRecipeLogService struct {
	mock.Mock
}

func (m *MockRecipeLogService) Similar(ctx context.Context, userID uuid.UUID, prompt string, limit int) ([]*models.RecipeLog, error) {
	args := m.Called(ctx, userID, prompt, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecipeLog), args.Error(1)
}

// MockFeedbackService is a mock implementation of the FeedbackService interface
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) CreateFeedback(ctx context.Context, userID uuid.UUID, req *types.CreateFeedbackRequest) (*models.Feedback, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Recent(ctx context.Context, userID uuid.UUID) ([]*models.Feedback, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

// MockHistoryService is a mock implementation of the HistoryService interface
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) LogPrompt(ctx context.Context, userID uuid.UUID, prompt, response string) (*models.PromptLog, error) {
	args := m.Called(ctx, userID, prompt, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromptLog), args.Error(1)
}

func (m *MockHistoryService) ListPrompts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PromptLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PromptLog), args.Error(1)
}
