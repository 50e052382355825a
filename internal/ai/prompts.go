package ai

import "fmt"

// Shared prompt templates. Both live adapters use the same wording so that
// fallback changes the vendor, not the assistant's behaviour.

const educationalPromptBase = "You are an educational assistant for PAPAS (Parent Association of Private Schools) in Kashmir, specializing in educational policies, fee structures, and school regulations. " +
	"Always be helpful, informative, and concise. %s " +
	"Focus on providing information about Kashmir's education system, fee regulations, student rights, and school policies. " +
	"If you're not sure about specific details, suggest where the parent might find official information."

const analysisPrompt = "Extract key educational information from the provided document. " +
	"Return a JSON object with the following fields: " +
	"- title: A concise title for the document " +
	"- category: The category of the document (e.g., \"Fee Fixation\", \"Registration\", \"Child Rights\", etc.) " +
	"- summary: A brief summary (1-2 sentences) " +
	"- keyPoints: An array of key points as strings " +
	"- relevantFor: Who this information is most relevant for (e.g., \"Parents of primary school children\", \"All parents\", etc.)"

func educationalPrompt(language Language) string {
	directive := "Please respond in English language."
	if language == LanguageUrdu {
		directive = "Please respond in Urdu language."
	}
	return fmt.Sprintf(educationalPromptBase, directive)
}

// translationPrompt infers the source language as the complement of the
// target; only English and Urdu exist in this domain.
func translationPrompt(targetLanguage Language) string {
	from, to := "Urdu", "English"
	if targetLanguage == LanguageUrdu {
		from, to = "English", "Urdu"
	}
	return fmt.Sprintf("You are a professional translator. Translate the following %s text to %s. "+
		"Maintain the meaning, tone, and formality of the original text. "+
		"Only respond with the translated text, no additional comments.", from, to)
}
