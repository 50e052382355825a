package services_test

import (
	"context"
	"os"
	"testing"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/models"
	"papas_go_backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func newAssistant(chatStore *MockChatStore, documents *MockDocumentFetcher, liveChain []ai.Provider, transcriber ai.Transcriber, mockProvider ai.Provider) *services.AssistantService {
	return services.NewAssistantService(chatStore, documents, liveChain, transcriber, mockProvider, nil, testLogger())
}

func TestProcessMessageFallsThroughToSecondary(t *testing.T) {
	chatStore := new(MockChatStore)
	primary := NewMockAIProvider("grok")
	secondary := NewMockAIProvider("gemini")

	userID := "u1"
	question := "What is the RTE act?"
	answer := "The RTE Act guarantees free education ages 6-14."

	chatStore.On("SaveChatMessage", userID, question, true, "english").
		Return(&models.ChatMessage{ID: 1, UserID: userID, Message: question, IsUser: true}, nil).Once()
	chatStore.On("GetRecentMessages", userID, 10).Return([]models.ChatMessage{}, nil).Once()

	primary.On("GetEducationalResponse", mock.Anything, question, mock.Anything, ai.LanguageEnglish).
		Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()
	secondary.On("GetEducationalResponse", mock.Anything, question, mock.Anything, ai.LanguageEnglish).
		Return(answer, nil).Once()

	chatStore.On("SaveChatMessage", userID, answer, false, "english").
		Return(&models.ChatMessage{ID: 2, UserID: userID, Message: answer, IsUser: false}, nil).Once()

	svc := newAssistant(chatStore, nil, []ai.Provider{primary, secondary}, nil, nil)
	reply, err := svc.ProcessMessage(context.Background(), userID, question, ai.LanguageEnglish)

	require.NoError(t, err)
	// the persisted turn carries the secondary provider's text, not the primary's
	assert.Equal(t, answer, reply.Message)
	assert.Equal(t, uint(2), reply.MessageID)

	chatStore.AssertExpectations(t)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestProcessMessageAllProvidersFailPersistsOnlyInbound(t *testing.T) {
	chatStore := new(MockChatStore)
	primary := NewMockAIProvider("grok")
	secondary := NewMockAIProvider("gemini")

	chatStore.On("SaveChatMessage", "u1", "hello", true, "english").
		Return(&models.ChatMessage{ID: 1}, nil).Once()
	chatStore.On("GetRecentMessages", "u1", 10).Return([]models.ChatMessage{}, nil).Once()

	primary.On("GetEducationalResponse", mock.Anything, "hello", mock.Anything, ai.LanguageEnglish).
		Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()
	secondary.On("GetEducationalResponse", mock.Anything, "hello", mock.Anything, ai.LanguageEnglish).
		Return("", &ai.ProviderError{Provider: "gemini", Err: assert.AnError}).Once()

	svc := newAssistant(chatStore, nil, []ai.Provider{primary, secondary}, nil, nil)
	_, err := svc.ProcessMessage(context.Background(), "u1", "hello", ai.LanguageEnglish)

	var allFailed *ai.AllProvidersFailedError
	require.ErrorAs(t, err, &allFailed)

	// exactly one persisted turn: the inbound one
	chatStore.AssertNumberOfCalls(t, "SaveChatMessage", 1)
	chatStore.AssertExpectations(t)
}

func TestProcessMessageUsesMockTierWhenEnabled(t *testing.T) {
	chatStore := new(MockChatStore)
	primary := NewMockAIProvider("grok")
	mockTier := NewMockAIProvider("mock")

	chatStore.On("SaveChatMessage", "u1", "fees?", true, "english").
		Return(&models.ChatMessage{ID: 10}, nil).Once()
	chatStore.On("GetRecentMessages", "u1", 10).Return([]models.ChatMessage{}, nil).Once()

	primary.On("GetEducationalResponse", mock.Anything, "fees?", mock.Anything, ai.LanguageEnglish).
		Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()
	mockTier.On("GetEducationalResponse", mock.Anything, "fees?", mock.Anything, ai.LanguageEnglish).
		Return("canned answer", nil).Once()

	chatStore.On("SaveChatMessage", "u1", "canned answer", false, "english").
		Return(&models.ChatMessage{ID: 11}, nil).Once()

	svc := newAssistant(chatStore, nil, []ai.Provider{primary}, nil, mockTier)
	reply, err := svc.ProcessMessage(context.Background(), "u1", "fees?", ai.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, "canned answer", reply.Message)
	mockTier.AssertExpectations(t)
}

func TestProcessMessagePassesBoundedHistoryInOrder(t *testing.T) {
	chatStore := new(MockChatStore)
	provider := NewMockAIProvider("grok")

	history := []models.ChatMessage{
		{ID: 1, Message: "q1", IsUser: true},
		{ID: 2, Message: "a1", IsUser: false},
	}

	chatStore.On("SaveChatMessage", "u1", "q2", true, "urdu").
		Return(&models.ChatMessage{ID: 3}, nil).Once()
	chatStore.On("GetRecentMessages", "u1", 10).Return(history, nil).Once()

	provider.On("GetEducationalResponse", mock.Anything, "q2",
		[]ai.HistoryMessage{{IsUser: true, Message: "q1"}, {IsUser: false, Message: "a1"}},
		ai.LanguageUrdu).Return("a2", nil).Once()

	chatStore.On("SaveChatMessage", "u1", "a2", false, "urdu").
		Return(&models.ChatMessage{ID: 4}, nil).Once()

	svc := newAssistant(chatStore, nil, []ai.Provider{provider}, nil, nil)
	_, err := svc.ProcessMessage(context.Background(), "u1", "q2", ai.LanguageUrdu)

	require.NoError(t, err)
	provider.AssertExpectations(t)
}

// recordingChatStore keeps every persisted turn so multi-turn flows can be
// asserted against the whole conversation, not single expectations.
type recordingChatStore struct {
	nextID uint
	turns  []models.ChatMessage
}

func (s *recordingChatStore) SaveChatMessage(userID, message string, isUser bool, language string) (*models.ChatMessage, error) {
	s.nextID++
	msg := models.ChatMessage{ID: s.nextID, UserID: userID, Message: message, IsUser: isUser, Language: language}
	s.turns = append(s.turns, msg)
	return &msg, nil
}

func (s *recordingChatStore) GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error) {
	start := 0
	if len(s.turns) > limit {
		start = len(s.turns) - limit
	}
	out := make([]models.ChatMessage, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out, nil
}

type echoProvider struct {
	histories [][]ai.HistoryMessage
}

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) GetEducationalResponse(_ context.Context, message string, history []ai.HistoryMessage, _ ai.Language) (string, error) {
	p.histories = append(p.histories, history)
	return "re: " + message, nil
}

func (p *echoProvider) TranslateText(_ context.Context, text string, _ ai.Language) (string, error) {
	return text, nil
}

func (p *echoProvider) AnalyzeDocumentContent(context.Context, string) (ai.DocumentAnalysis, error) {
	return ai.DocumentAnalysis{}, nil
}

func TestProcessMessageMultiTurnConversation(t *testing.T) {
	store := &recordingChatStore{}
	provider := &echoProvider{}
	svc := services.NewAssistantService(store, nil, []ai.Provider{provider}, nil, nil, nil, testLogger())

	questions := []string{"q1", "q2", "q3"}
	for _, q := range questions {
		_, err := svc.ProcessMessage(context.Background(), "u1", q, ai.LanguageEnglish)
		require.NoError(t, err)
	}

	// Three exchanges persist exactly six turns, strictly chronological,
	// alternating user/assistant starting with the user.
	turns, err := store.GetRecentMessages("u1", 6)
	require.NoError(t, err)
	require.Len(t, turns, 6)

	wantMessages := []string{"q1", "re: q1", "q2", "re: q2", "q3", "re: q3"}
	for i, turn := range turns {
		assert.Equal(t, wantMessages[i], turn.Message)
		assert.Equal(t, i%2 == 0, turn.IsUser)
		assert.Equal(t, uint(i+1), turn.ID)
	}

	// Each call sees exactly the turns persisted before it, inbound included.
	require.Len(t, provider.histories, 3)
	assert.Equal(t, []ai.HistoryMessage{{IsUser: true, Message: "q1"}}, provider.histories[0])
	assert.Equal(t, []ai.HistoryMessage{
		{IsUser: true, Message: "q1"},
		{IsUser: false, Message: "re: q1"},
		{IsUser: true, Message: "q2"},
	}, provider.histories[1])
	assert.Equal(t, []ai.HistoryMessage{
		{IsUser: true, Message: "q1"},
		{IsUser: false, Message: "re: q1"},
		{IsUser: true, Message: "q2"},
		{IsUser: false, Message: "re: q2"},
		{IsUser: true, Message: "q3"},
	}, provider.histories[2])
}

func TestProcessAudio(t *testing.T) {
	t.Run("transcription failure without mock persists nothing", func(t *testing.T) {
		chatStore := new(MockChatStore)
		transcriber := new(MockTranscriber)

		transcriber.On("TranscribeAudio", mock.Anything, "AAAA").
			Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()

		svc := newAssistant(chatStore, nil, []ai.Provider{NewMockAIProvider("grok")}, transcriber, nil)
		_, err := svc.ProcessAudio(context.Background(), "u1", "AAAA", ai.LanguageEnglish)

		require.Error(t, err)
		chatStore.AssertNumberOfCalls(t, "SaveChatMessage", 0)
	})

	t.Run("transcript runs through the message flow", func(t *testing.T) {
		chatStore := new(MockChatStore)
		transcriber := new(MockTranscriber)
		provider := NewMockAIProvider("grok")

		transcriber.On("TranscribeAudio", mock.Anything, "AAAA").
			Return("What about fees?", nil).Once()
		chatStore.On("SaveChatMessage", "u1", "What about fees?", true, "english").
			Return(&models.ChatMessage{ID: 1}, nil).Once()
		chatStore.On("GetRecentMessages", "u1", 10).Return([]models.ChatMessage{}, nil).Once()
		provider.On("GetEducationalResponse", mock.Anything, "What about fees?", mock.Anything, ai.LanguageEnglish).
			Return("Fees are capped.", nil).Once()
		chatStore.On("SaveChatMessage", "u1", "Fees are capped.", false, "english").
			Return(&models.ChatMessage{ID: 2}, nil).Once()

		svc := newAssistant(chatStore, nil, []ai.Provider{provider}, transcriber, nil)
		reply, err := svc.ProcessAudio(context.Background(), "u1", "AAAA", ai.LanguageEnglish)

		require.NoError(t, err)
		assert.Equal(t, "What about fees?", reply.Transcription)
		assert.Equal(t, "Fees are capped.", reply.Message)
		assert.Equal(t, uint(2), reply.MessageID)
	})

	t.Run("reply chain for audio never includes the mock tier", func(t *testing.T) {
		chatStore := new(MockChatStore)
		transcriber := new(MockTranscriber)
		live := NewMockAIProvider("grok")
		mockTier := NewMockAIProvider("mock")

		transcriber.On("TranscribeAudio", mock.Anything, "AAAA").Return("hello", nil).Once()
		chatStore.On("SaveChatMessage", "u1", "hello", true, "english").
			Return(&models.ChatMessage{ID: 1}, nil).Once()
		chatStore.On("GetRecentMessages", "u1", 10).Return([]models.ChatMessage{}, nil).Once()
		live.On("GetEducationalResponse", mock.Anything, "hello", mock.Anything, ai.LanguageEnglish).
			Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()

		svc := newAssistant(chatStore, nil, []ai.Provider{live}, transcriber, mockTier)
		_, err := svc.ProcessAudio(context.Background(), "u1", "AAAA", ai.LanguageEnglish)

		var allFailed *ai.AllProvidersFailedError
		require.ErrorAs(t, err, &allFailed)
		mockTier.AssertNotCalled(t, "GetEducationalResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTranslateFallsThroughAndDoesNotPersist(t *testing.T) {
	chatStore := new(MockChatStore)
	primary := NewMockAIProvider("grok")
	secondary := NewMockAIProvider("gemini")

	primary.On("TranslateText", mock.Anything, "hello", ai.LanguageUrdu).
		Return("", &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()
	secondary.On("TranslateText", mock.Anything, "hello", ai.LanguageUrdu).
		Return("سلام", nil).Once()

	svc := newAssistant(chatStore, nil, []ai.Provider{primary, secondary}, nil, nil)
	result, err := svc.Translate(context.Background(), "hello", ai.LanguageUrdu)

	require.NoError(t, err)
	assert.Equal(t, "hello", result.Original)
	assert.Equal(t, "سلام", result.Translated)
	assert.Equal(t, "urdu", result.Language)

	chatStore.AssertNumberOfCalls(t, "SaveChatMessage", 0)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestAnalyzeDocument(t *testing.T) {
	doc := &models.Document{Title: "Fee Order 2024", Content: "full circular text"}
	doc.ID = 7

	t.Run("unknown document", func(t *testing.T) {
		documents := new(MockDocumentFetcher)
		documents.On("GetDocumentByID", uint(99)).Return(nil, nil).Once()

		svc := newAssistant(new(MockChatStore), documents, []ai.Provider{NewMockAIProvider("grok")}, nil, nil)
		_, err := svc.AnalyzeDocument(context.Background(), 99)

		assert.ErrorIs(t, err, services.ErrDocumentNotFound)
	})

	t.Run("successful analysis", func(t *testing.T) {
		documents := new(MockDocumentFetcher)
		provider := NewMockAIProvider("grok")

		documents.On("GetDocumentByID", uint(7)).Return(doc, nil).Once()
		provider.On("AnalyzeDocumentContent", mock.Anything, "full circular text").
			Return(ai.DocumentAnalysis{Title: "Fee Order 2024", Category: "Fee Fixation"}, nil).Once()

		svc := newAssistant(new(MockChatStore), documents, []ai.Provider{provider}, nil, nil)
		result, err := svc.AnalyzeDocument(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, uint(7), result.DocumentID)
		assert.Equal(t, "Fee Order 2024", result.DocumentTitle)
		assert.Equal(t, "Fee Fixation", result.Analysis.Category)
	})

	t.Run("malformed vendor output degrades to placeholder", func(t *testing.T) {
		documents := new(MockDocumentFetcher)
		provider := NewMockAIProvider("grok")

		documents.On("GetDocumentByID", uint(7)).Return(doc, nil).Once()
		provider.On("AnalyzeDocumentContent", mock.Anything, "full circular text").
			Return(ai.DocumentAnalysis{}, &ai.MalformedResponseError{Provider: "grok", Err: assert.AnError}).Once()

		svc := newAssistant(new(MockChatStore), documents, []ai.Provider{provider}, nil, nil)
		result, err := svc.AnalyzeDocument(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Unknown", result.Analysis.Category)
		assert.Equal(t, []string{"Error processing document"}, result.Analysis.KeyPoints)
	})

	t.Run("provider failure falls through to next", func(t *testing.T) {
		documents := new(MockDocumentFetcher)
		primary := NewMockAIProvider("grok")
		secondary := NewMockAIProvider("gemini")

		documents.On("GetDocumentByID", uint(7)).Return(doc, nil).Once()
		primary.On("AnalyzeDocumentContent", mock.Anything, "full circular text").
			Return(ai.DocumentAnalysis{}, &ai.ProviderError{Provider: "grok", Err: assert.AnError}).Once()
		secondary.On("AnalyzeDocumentContent", mock.Anything, "full circular text").
			Return(ai.DocumentAnalysis{Title: "Recovered"}, nil).Once()

		svc := newAssistant(new(MockChatStore), documents, []ai.Provider{primary, secondary}, nil, nil)
		result, err := svc.AnalyzeDocument(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Recovered", result.Analysis.Title)
	})
}
