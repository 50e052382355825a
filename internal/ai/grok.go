package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultGrokBaseURL = "https://api.x.ai/v1"
	grokChatModel      = "grok-2-1212"
	whisperModel       = "whisper-1"

	chatTemperature      float32 = 0.7
	chatMaxTokens                = 800
	translateTemperature float32 = 0.3
	translateMaxTokens           = 800
	analysisTemperature  float32 = 0.2
	analysisMaxTokens            = 1000
)

// GrokProvider talks to an OpenAI-compatible chat-completions endpoint
// (xAI by default). It is the only live provider with a transcription
// capability.
type GrokProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewGrokProvider(apiKey, baseURL string, logger zerolog.Logger) *GrokProvider {
	if baseURL == "" {
		baseURL = defaultGrokBaseURL
	}
	return &GrokProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With().Str("provider", "grok").Logger(),
	}
}

func (p *GrokProvider) Name() string { return "grok" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *GrokProvider) GetEducationalResponse(ctx context.Context, message string, history []HistoryMessage, language Language) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: educationalPrompt(language)})
	for _, h := range history {
		role := "assistant"
		if h.IsUser {
			role = "user"
		}
		messages = append(messages, chatMessage{Role: role, Content: h.Message})
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	return p.chatCompletion(ctx, chatCompletionRequest{
		Model:       grokChatModel,
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
}

func (p *GrokProvider) TranslateText(ctx context.Context, text string, targetLanguage Language) (string, error) {
	// Defined no-op, not an error.
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	return p.chatCompletion(ctx, chatCompletionRequest{
		Model: grokChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: translationPrompt(targetLanguage)},
			{Role: "user", Content: text},
		},
		MaxTokens:   translateMaxTokens,
		Temperature: translateTemperature,
	})
}

func (p *GrokProvider) AnalyzeDocumentContent(ctx context.Context, text string) (DocumentAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return DocumentAnalysis{}, nil
	}

	raw, err := p.chatCompletion(ctx, chatCompletionRequest{
		Model: grokChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:      analysisMaxTokens,
		Temperature:    analysisTemperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return DocumentAnalysis{}, err
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return DocumentAnalysis{}, &MalformedResponseError{Provider: p.Name(), Err: err}
	}
	return analysis, nil
}

// TranscribeAudio submits base64-encoded audio to the Whisper endpoint,
// fixed to English.
func (p *GrokProvider) TranscribeAudio(ctx context.Context, audioBase64 string) (string, error) {
	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("invalid base64 audio: %w", err)}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	if _, err := part.Write(audio); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	if err := writer.WriteField("model", whisperModel); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	if err := writer.WriteField("language", "en"); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := p.send(httpReq)
	if err != nil {
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to parse transcription response: %w", err)}
	}
	return result.Text, nil
}

func (p *GrokProvider) chatCompletion(ctx context.Context, req chatCompletionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := p.send(httpReq)
	if err != nil {
		return "", err
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no choices in response")}
	}
	return result.Choices[0].Message.Content, nil
}

func (p *GrokProvider) send(req *http.Request) ([]byte, error) {
	if p.apiKey == "" {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("API key not configured")}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("xAI API error")
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))}
	}
	return body, nil
}
