package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"insightai/internal/store"
)

const defaultInsightModelName = "gemini-1.5-flash-latest"

// InsightRequest is the validated input for one model call. At least
// one of Text (non-blank) or Image must be present; the orchestrator
// in insight_service.go enforces that before the request reaches here.
type InsightRequest struct {
	Text     string
	Language store.Language
	Image    []byte // JPEG bytes, at most one image per request
}

// LLMService issues exactly one Gemini call per GenerateInsight and
// converts the raw reply into a validated InsightResponse or a
// classified AnalysisError. It performs no retries and no caching.
type LLMService struct {
	creds *CredentialStore
	model string
}

func NewLLMService(creds *CredentialStore, modelName string) *LLMService {
	if modelName == "" {
		modelName = defaultInsightModelName
	}
	return &LLMService{creds: creds, model: modelName}
}

// GenerateInsight runs the full call pipeline: credential gate, payload
// construction, one GenerateContent call with the strict output schema,
// then independent re-validation of the reply. The client is built per
// call so a key installed at runtime takes effect immediately.
func (s *LLMService) GenerateInsight(ctx context.Context, req InsightRequest) (*store.InsightResponse, error) {
	key, ok := s.creds.Resolve()
	if !ok {
		return nil, &AnalysisError{
			Kind:    KindMissingCredential,
			Message: "no API key configured; set one before requesting an analysis",
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, classifyCallError(err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(buildSystemInstruction(req.Language))},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   insightResponseSchema(),
	}

	resp, err := model.GenerateContent(ctx, buildUserParts(req.Text, req.Image)...)
	if err != nil {
		return nil, classifyCallError(err)
	}

	raw := extractText(resp)
	if strings.TrimSpace(raw) == "" {
		return nil, &AnalysisError{
			Kind:    KindEmptyResponse,
			Message: "the model returned an empty response",
		}
	}

	return parseInsight(raw)
}

// extractText concatenates the text parts of the first candidate.
// Anything else (no candidates, non-text parts only) yields "".
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

// parseInsight validates the textual payload against the four-field
// contract. Acceptance is all-or-nothing: a missing field, an unknown
// context tag, or unparseable JSON each reject the whole reply.
func parseInsight(raw string) (*store.InsightResponse, error) {
	var insight store.InsightResponse
	if err := json.Unmarshal([]byte(raw), &insight); err != nil {
		return nil, &AnalysisError{
			Kind:    KindMalformedResponse,
			Message: "the model reply was not valid JSON",
			Err:     err,
		}
	}

	missing := missingFields(&insight)
	if len(missing) > 0 {
		return nil, &AnalysisError{
			Kind:    KindMalformedResponse,
			Message: "the model reply is missing required fields: " + strings.Join(missing, ", "),
		}
	}

	// The schema only constrains context to be a string, so the value
	// is untrusted until checked against the closed set.
	if !insight.Context.Valid() {
		return nil, &AnalysisError{
			Kind:    KindMalformedResponse,
			Message: "the model reply used an unknown context tag: " + string(insight.Context),
		}
	}

	return &insight, nil
}

func missingFields(insight *store.InsightResponse) []string {
	var missing []string
	if insight.Context == "" {
		missing = append(missing, "context")
	}
	if insight.Understand == "" {
		missing = append(missing, "understand")
	}
	if insight.Grow == "" {
		missing = append(missing, "grow")
	}
	if insight.Act == "" {
		missing = append(missing, "act")
	}
	return missing
}
