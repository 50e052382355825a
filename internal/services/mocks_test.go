package services_test

import (
	"context"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) SaveChatMessage(userID, message string, isUser bool, language string) (*models.ChatMessage, error) {
	args := m.Called(userID, message, isUser, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatStore) GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

type MockDocumentFetcher struct {
	mock.Mock
}

func (m *MockDocumentFetcher) GetDocumentByID(id uint) (*models.Document, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

type MockAIProvider struct {
	mock.Mock
	name string
}

func NewMockAIProvider(name string) *MockAIProvider {
	return &MockAIProvider{name: name}
}

func (m *MockAIProvider) Name() string { return m.name }

func (m *MockAIProvider) GetEducationalResponse(ctx context.Context, message string, history []ai.HistoryMessage, language ai.Language) (string, error) {
	args := m.Called(ctx, message, history, language)
	return args.String(0), args.Error(1)
}

func (m *MockAIProvider) TranslateText(ctx context.Context, text string, targetLanguage ai.Language) (string, error) {
	args := m.Called(ctx, text, targetLanguage)
	return args.String(0), args.Error(1)
}

func (m *MockAIProvider) AnalyzeDocumentContent(ctx context.Context, text string) (ai.DocumentAnalysis, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(ai.DocumentAnalysis), args.Error(1)
}

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) TranscribeAudio(ctx context.Context, audioBase64 string) (string, error) {
	args := m.Called(ctx, audioBase64)
	return args.String(0), args.Error(1)
}
