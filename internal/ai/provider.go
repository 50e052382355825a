// Package ai contains the LLM provider adapters used by the assistant: a
// Grok (xAI) adapter speaking the OpenAI-compatible chat-completions API, a
// Google Gemini adapter, and a deterministic mock responder for development.
package ai

import "context"

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageUrdu    Language = "urdu"
)

// NormalizeLanguage maps arbitrary request input onto the two languages this
// domain supports, defaulting to English.
func NormalizeLanguage(s string) Language {
	if Language(s) == LanguageUrdu {
		return LanguageUrdu
	}
	return LanguageEnglish
}

// HistoryMessage is one prior conversation turn passed to a provider for
// context. Order matters: oldest first.
type HistoryMessage struct {
	IsUser  bool
	Message string
}

// DocumentAnalysis is the structured output of the document-analysis
// operation. It is ephemeral; callers decide whether to persist it.
type DocumentAnalysis struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"keyPoints"`
	RelevantFor string   `json:"relevantFor"`
}

func (a DocumentAnalysis) IsZero() bool {
	return a.Title == "" && a.Category == "" && a.Summary == "" &&
		len(a.KeyPoints) == 0 && a.RelevantFor == ""
}

// Provider is the uniform contract every AI backend implements. The
// orchestrator iterates an ordered slice of Providers until one succeeds,
// so adding a backend is a wiring change, not a control-flow change.
type Provider interface {
	Name() string

	// GetEducationalResponse answers a parent's question given bounded
	// prior history, in the requested language.
	GetEducationalResponse(ctx context.Context, message string, history []HistoryMessage, language Language) (string, error)

	// TranslateText translates between English and Urdu. Empty or
	// whitespace-only input is returned unchanged without a vendor call.
	TranslateText(ctx context.Context, text string, targetLanguage Language) (string, error)

	// AnalyzeDocumentContent extracts structured information from a
	// regulatory document. Empty input yields a zero DocumentAnalysis
	// without a vendor call.
	AnalyzeDocumentContent(ctx context.Context, text string) (DocumentAnalysis, error)
}

// Transcriber converts base64-encoded audio to text. Only the Grok adapter
// (Whisper) and the mock responder implement it; Gemini must never be
// selected for transcription.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, audioBase64 string) (string, error)
}
