package core

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"insightai/internal/store"
)

const (
	// Shown to the model when the user supplied only a document image.
	placeholderPrompt = "Analyze the provided information/image."

	systemInstructionTemplate = "You are InsightAI, a professional assistant for personal, career, and business guidance. " +
		"Your task is to provide intelligent, structured guidance based on documents or queries provided by the user.\n" +
		"1. Identify context: Personal, Career, Business, or General.\n" +
		"2. LANGUAGE RULE: ALWAYS respond in %s. Use native vocabulary but maintain professional clarity.\n" +
		"3. STRUCTURE: You must provide output in three specific sections:\n" +
		"   - Understand: Summarize the input, identify key facts, and clarify ambiguities.\n" +
		"   - Grow: Suggest areas for improvement, skill gaps, or long-term benefits.\n" +
		"   - Act: Provide a clear, numbered list of actionable steps for the user to take immediately.\n" +
		"4. TONE: Professional, supportive, and direct. Do not give legal or medical advice."
)

// buildSystemInstruction returns the fixed instruction parameterized
// only by the requested response language.
func buildSystemInstruction(lang store.Language) string {
	return fmt.Sprintf(systemInstructionTemplate, lang)
}

// buildUserParts assembles the ordered content list for one request:
// a text part first, then the JPEG image if one was supplied. Blank
// text is replaced with the placeholder prompt so the model always
// receives an instruction to act on.
func buildUserParts(text string, image []byte) []genai.Part {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		prompt = placeholderPrompt
	}

	parts := []genai.Part{genai.Text(prompt)}
	if len(image) > 0 {
		parts = append(parts, genai.ImageData("jpeg", image))
	}
	return parts
}

// insightResponseSchema declares the strict output contract: an object
// with exactly the four required string fields. The validator in
// llm_service.go re-checks the same contract on the way back in.
func insightResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"context": {
				Type:        genai.TypeString,
				Description: "The categorized context of the query (Personal, Career, Business, General)",
			},
			"understand": {
				Type:        genai.TypeString,
				Description: "Summary and key details",
			},
			"grow": {
				Type:        genai.TypeString,
				Description: "Improvements and gaps",
			},
			"act": {
				Type:        genai.TypeString,
				Description: "Actionable steps",
			},
		},
		Required: []string{"context", "understand", "grow", "act"},
	}
}
