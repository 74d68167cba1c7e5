package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/sousie/backend/internal/menu"
	"github.com/pageza/sousie/backend/internal/prompts"
	"github.com/pageza/sousie/backend/internal/provider"
	"github.com/pageza/sousie/backend/internal/service"
)

// MockChatClient is a mock language model
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Complete(ctx context.Context, req provider.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockChatService is a mock implementation of the ChatService interface
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, userID, conversationID uuid.UUID, msgs []provider.Message, tpl prompts.Template) (*service.Turn, error) {
	args := m.Called(ctx, userID, conversationID, msgs, tpl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Turn), args.Error(1)
}

func (m *MockChatService) GenerateMenu(ctx context.Context, userID uuid.UUID, ingredients, cuisine string, quick bool) (*service.Turn, error) {
	args := m.Called(ctx, userID, ingredients, cuisine, quick)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Turn), args.Error(1)
}

func (m *MockChatService) Menu(ctx context.Context, userID, conversationID uuid.UUID) (*menu.Menu, error) {
	args := m.Called(ctx, userID, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Menu), args.Error(1)
}

func (m *MockChatService) Reset(ctx context.Context, userID, conversationID uuid.UUID) error {
	args := m.Called(ctx, userID, conversationID)
	return args.Error(0)
}

// MockObjectPutter is a mock S3 uploader
type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}
