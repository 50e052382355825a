package services

import (
	"context"
	"errors"
	"fmt"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/models"

	"github.com/rs/zerolog"
)

// historyLimit bounds the conversation context sent to providers. This
// trades recall for a fixed token cost per request.
const historyLimit = 10

var ErrDocumentNotFound = errors.New("document not found")

// AssistantReply is the result of a processed chat or voice message.
type AssistantReply struct {
	Transcription string `json:"transcription,omitempty"`
	Message       string `json:"message"`
	MessageID     uint   `json:"messageId"`
}

// TranslationResult echoes the original text alongside its translation.
type TranslationResult struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Language   string `json:"language"`
}

// DocumentAnalysisResult pairs an analysis with the document it describes.
type DocumentAnalysisResult struct {
	DocumentID    uint                `json:"documentId"`
	DocumentTitle string              `json:"documentTitle"`
	Analysis      ai.DocumentAnalysis `json:"analysis"`
}

// ChatReplyTopic is the broker topic carrying assistant replies for one
// user, consumed by the websocket handler for cross-device fanout.
func ChatReplyTopic(userID string) string {
	return "chat_reply_" + userID
}

// AssistantService orchestrates the AI providers: it persists conversation
// turns, assembles bounded history, and walks an ordered fallback chain
// until one provider answers. Provider priority is fixed at construction,
// never read from ambient state at call time.
type AssistantService struct {
	chatStore   ChatStore
	documents   DocumentFetcher
	liveChain   []ai.Provider
	transcriber ai.Transcriber
	mock        ai.Provider
	publisher   ReplyPublisher
	logger      zerolog.Logger
}

// NewAssistantService wires the orchestrator. liveChain must be ordered by
// priority; mock may be nil, in which case the chain ends with the last
// live provider.
func NewAssistantService(
	chatStore ChatStore,
	documents DocumentFetcher,
	liveChain []ai.Provider,
	transcriber ai.Transcriber,
	mock ai.Provider,
	publisher ReplyPublisher,
	logger zerolog.Logger,
) *AssistantService {
	return &AssistantService{
		chatStore:   chatStore,
		documents:   documents,
		liveChain:   liveChain,
		transcriber: transcriber,
		mock:        mock,
		publisher:   publisher,
		logger:      logger.With().Str("service", "assistant").Logger(),
	}
}

// ProcessMessage handles one inbound chat message. The inbound turn is
// persisted before any provider call, so a total provider failure still
// leaves the user's question recorded.
func (s *AssistantService) ProcessMessage(ctx context.Context, userID, message string, language ai.Language) (*AssistantReply, error) {
	if _, err := s.chatStore.SaveChatMessage(userID, message, true, string(language)); err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	history := s.loadHistory(userID)

	chain := s.liveChain
	if s.mock != nil {
		chain = append(append([]ai.Provider{}, s.liveChain...), s.mock)
	}

	response, err := s.educationalResponse(ctx, chain, message, history, language)
	if err != nil {
		return nil, err
	}

	return s.persistReply(userID, response, language)
}

// ProcessAudio transcribes a voice note and then runs the message flow on
// the transcript. Transcription has no live fallback: only one provider can
// do it. If transcription fails with mock mode off, nothing is persisted.
//
// Note the reply chain here contains only the live providers. The source
// system never fell through to mock for voice replies even with mock mode
// on, and that behaviour is kept rather than silently unified with
// ProcessMessage.
func (s *AssistantService) ProcessAudio(ctx context.Context, userID, audioBase64 string, language ai.Language) (*AssistantReply, error) {
	transcription, err := s.transcriber.TranscribeAudio(ctx, audioBase64)
	if err != nil {
		mockT, ok := s.mock.(ai.Transcriber)
		if !ok || s.mock == nil {
			return nil, err
		}
		s.logger.Warn().Err(err).Msg("transcription failed, using mock transcription")
		transcription, err = mockT.TranscribeAudio(ctx, audioBase64)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.chatStore.SaveChatMessage(userID, transcription, true, string(language)); err != nil {
		return nil, fmt.Errorf("failed to save transcribed message: %w", err)
	}

	history := s.loadHistory(userID)

	response, err := s.educationalResponse(ctx, s.liveChain, transcription, history, language)
	if err != nil {
		return nil, err
	}

	reply, err := s.persistReply(userID, response, language)
	if err != nil {
		return nil, err
	}
	reply.Transcription = transcription
	return reply, nil
}

// Translate is a stateless pass-through over the live chain; nothing is
// persisted and the mock tier is never consulted.
func (s *AssistantService) Translate(ctx context.Context, text string, targetLanguage ai.Language) (*TranslationResult, error) {
	var lastErr error
	for _, p := range s.liveChain {
		translated, err := p.TranslateText(ctx, text, targetLanguage)
		if err != nil {
			s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("translation failed, trying next provider")
			lastErr = err
			continue
		}
		return &TranslationResult{
			Original:   text,
			Translated: translated,
			Language:   string(targetLanguage),
		}, nil
	}
	return nil, &ai.AllProvidersFailedError{Last: lastErr}
}

// AnalyzeDocument fetches a stored document and runs the analysis chain
// over its content. A malformed vendor response degrades to a placeholder
// analysis rather than a hard failure.
func (s *AssistantService) AnalyzeDocument(ctx context.Context, documentID uint) (*DocumentAnalysisResult, error) {
	doc, err := s.documents.GetDocumentByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	result := &DocumentAnalysisResult{
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
	}

	var lastErr error
	for _, p := range s.liveChain {
		analysis, err := p.AnalyzeDocumentContent(ctx, doc.Content)
		if err != nil {
			var malformed *ai.MalformedResponseError
			if errors.As(err, &malformed) {
				s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("unparsable analysis, substituting placeholder")
				result.Analysis = placeholderAnalysis()
				return result, nil
			}
			s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("analysis failed, trying next provider")
			lastErr = err
			continue
		}
		result.Analysis = analysis
		return result, nil
	}
	return nil, &ai.AllProvidersFailedError{Last: lastErr}
}

// GetChatHistory returns the most recent turns for a user, oldest first.
func (s *AssistantService) GetChatHistory(userID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = historyLimit
	}
	return s.chatStore.GetRecentMessages(userID, limit)
}

func (s *AssistantService) educationalResponse(ctx context.Context, chain []ai.Provider, message string, history []ai.HistoryMessage, language ai.Language) (string, error) {
	var lastErr error
	for _, p := range chain {
		response, err := p.GetEducationalResponse(ctx, message, history, language)
		if err != nil {
			s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("provider failed, trying next in chain")
			lastErr = err
			continue
		}
		s.logger.Info().Str("provider", p.Name()).Msg("provider answered")
		return response, nil
	}
	return "", &ai.AllProvidersFailedError{Last: lastErr}
}

func (s *AssistantService) loadHistory(userID string) []ai.HistoryMessage {
	messages, err := s.chatStore.GetRecentMessages(userID, historyLimit)
	if err != nil {
		// Degrade to an empty context window rather than failing the
		// request; the inbound turn is already persisted.
		s.logger.Warn().Err(err).Str("userID", userID).Msg("failed to load chat history")
		return nil
	}

	history := make([]ai.HistoryMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, ai.HistoryMessage{IsUser: m.IsUser, Message: m.Message})
	}
	return history
}

func (s *AssistantService) persistReply(userID, response string, language ai.Language) (*AssistantReply, error) {
	saved, err := s.chatStore.SaveChatMessage(userID, response, false, string(language))
	if err != nil {
		return nil, fmt.Errorf("failed to save AI response: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(ChatReplyTopic(userID), saved)
	}

	return &AssistantReply{Message: response, MessageID: saved.ID}, nil
}

func placeholderAnalysis() ai.DocumentAnalysis {
	return ai.DocumentAnalysis{
		Title:       "Document Analysis",
		Category:    "Unknown",
		Summary:     "Unable to analyze document content",
		KeyPoints:   []string{"Error processing document"},
		RelevantFor: "Unknown",
	}
}
