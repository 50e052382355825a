package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
)

const geminiChatModel = "gemini-1.5-flash-latest"

// GeminiProvider wraps Google's generative AI API. It has no transcription
// capability and therefore deliberately does not implement Transcriber.
type GeminiProvider struct {
	client *genai.Client
	logger zerolog.Logger
}

func NewGeminiProvider(client *genai.Client, logger zerolog.Logger) *GeminiProvider {
	return &GeminiProvider{
		client: client,
		logger: logger.With().Str("provider", "gemini").Logger(),
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) GetEducationalResponse(ctx context.Context, message string, history []HistoryMessage, language Language) (string, error) {
	model := p.model(educationalPrompt(language), chatTemperature, chatMaxTokens)

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, h := range history {
		role := "model"
		if h.IsUser {
			role = "user"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(h.Message)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return p.extractText(resp)
}

func (p *GeminiProvider) TranslateText(ctx context.Context, text string, targetLanguage Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	model := p.model(translationPrompt(targetLanguage), translateTemperature, translateMaxTokens)
	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return p.extractText(resp)
}

func (p *GeminiProvider) AnalyzeDocumentContent(ctx context.Context, text string) (DocumentAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return DocumentAnalysis{}, nil
	}

	model := p.model(analysisPrompt, analysisTemperature, analysisMaxTokens)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return DocumentAnalysis{}, &ProviderError{Provider: p.Name(), Err: err}
	}
	raw, err := p.extractText(resp)
	if err != nil {
		return DocumentAnalysis{}, err
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return DocumentAnalysis{}, &MalformedResponseError{Provider: p.Name(), Err: err}
	}
	return analysis, nil
}

func (p *GeminiProvider) model(systemInstruction string, temperature float32, maxTokens int32) *genai.GenerativeModel {
	model := p.client.GenerativeModel(geminiChatModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)
	return model
}

func (p *GeminiProvider) extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no candidates in response")}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("response contained no text parts")}
	}
	return sb.String(), nil
}
