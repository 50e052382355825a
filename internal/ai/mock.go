package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const devNotice = "[Note: This is a development mode response. Connect a valid AI service API key for production use.]"

// topicRule maps message keywords to a canned topic. Rules are evaluated in
// order and the first match wins, so "What is the admission fee?" resolves
// to fees, not admission.
type topicRule struct {
	topic    string
	keywords []string
}

var topicRules = []topicRule{
	{"fees", []string{"fee", "payment", "cost"}},
	{"admission", []string{"admission", "enroll", "join"}},
	{"curriculum", []string{"curriculum", "syllabus", "course"}},
	{"rights", []string{"right", "protect", "law"}},
}

var cannedResponses = map[string]string{
	"fees": "According to Kashmir's Fee Fixation Committee (FFC) regulations, private schools must adhere to the fee structure approved by the committee. " +
		"Schools cannot increase fees arbitrarily and must justify any proposed increases with detailed financial statements. " +
		"The committee evaluates these proposals based on factors like infrastructure improvements, teacher salaries, and educational quality. " +
		"Parents can report violations to the FFC or the Directorate of School Education Kashmir.",
	"admission": "School admissions in Kashmir are regulated to ensure fairness and transparency. " +
		"Private schools must reserve 25% of seats for economically disadvantaged students as per the Right to Education Act. " +
		"Schools are required to publish their admission criteria and schedule well in advance. " +
		"Screening tests for young children (pre-primary and primary) are prohibited. " +
		"Parents should check if the school has proper recognition from the J&K Board of School Education before seeking admission.",
	"curriculum": "Schools in Kashmir should follow either the J&K Board of School Education curriculum or recognized national boards like CBSE or ICSE. " +
		"The curriculum must include compulsory subjects like English, Mathematics, Science, Social Studies, and a regional language option. " +
		"Additionally, schools are required to provide adequate physical education and arts education. " +
		"The Director of School Education Kashmir monitors curriculum implementation across schools.",
	"rights": "Children in Kashmir have several educational rights protected by law. " +
		"These include the right to free and compulsory education until age 14, protection from physical punishment or mental harassment, " +
		"right to non-discrimination in education, and special provisions for differently-abled children. " +
		"The J&K School Education Act along with the Right to Education Act safeguard these rights. " +
		"Parents can file complaints with the local education department or child rights commission if these rights are violated.",
	"default": "I understand you have a question about education in Kashmir. " +
		"While I don't have specific information on this particular topic, I can suggest contacting the Directorate of School Education Kashmir " +
		"or the Fee Fixation Committee for accurate and up-to-date information. " +
		"The Parent Association of Private Schools (PAPAS) in Kashmir can also provide guidance on educational policies and regulations affecting students and parents.",
}

// MockProvider returns deterministic canned answers. It only ever sits at
// the end of the fallback chain, and only when mock mode is enabled.
type MockProvider struct {
	// delayUnit scales the simulated latencies; tests construct the
	// provider with a zero unit to run instantly.
	delayUnit time.Duration
}

func NewMockProvider() *MockProvider {
	return &MockProvider{delayUnit: time.Millisecond}
}

func NewInstantMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string { return "mock" }

// MatchTopic returns the canned topic for a message, applying the fixed
// first-match-wins keyword priority.
func MatchTopic(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.topic
			}
		}
	}
	return "default"
}

func (p *MockProvider) GetEducationalResponse(ctx context.Context, message string, history []HistoryMessage, language Language) (string, error) {
	if err := p.sleep(ctx, 500); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n\n%s", cannedResponses[MatchTopic(message)], devNotice), nil
}

func (p *MockProvider) TranslateText(ctx context.Context, text string, targetLanguage Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if err := p.sleep(ctx, 300); err != nil {
		return "", err
	}

	placeholder := "[English translation would appear here]"
	if targetLanguage == LanguageUrdu {
		placeholder = "[Urdu translation would appear here]"
	}
	notice := "[Note: This is a development mode translation. Connect a valid AI service API key for actual translation.]"
	return fmt.Sprintf("%s %s\n\n%s", placeholder, text, notice), nil
}

func (p *MockProvider) AnalyzeDocumentContent(ctx context.Context, text string) (DocumentAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return DocumentAnalysis{}, nil
	}
	if err := p.sleep(ctx, 700); err != nil {
		return DocumentAnalysis{}, err
	}

	category := "Brief Guideline"
	if len(text) > 1000 {
		category = "Comprehensive Policy"
	}
	size := "brief and concise"
	if len(text) > 500 {
		size = "lengthy and detailed"
	}

	return DocumentAnalysis{
		Title:    "Document Analysis (Development Mode)",
		Category: category,
		Summary:  "This is a mock document analysis for development purposes.",
		KeyPoints: []string{
			"This analysis is for development and testing only",
			"Connect a valid AI service API key for production use",
			"The document appears to be " + size,
		},
		RelevantFor: "Developers testing the application",
	}, nil
}

func (p *MockProvider) TranscribeAudio(ctx context.Context, audioBase64 string) (string, error) {
	if err := p.sleep(ctx, 1000); err != nil {
		return "", err
	}
	return "This is a mock transcription for development purposes. Connect a valid AI service API key for actual transcription.", nil
}

func (p *MockProvider) sleep(ctx context.Context, units int) error {
	d := time.Duration(units) * p.delayUnit
	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return &ProviderError{Provider: p.Name(), Err: ctx.Err()}
	}
}
