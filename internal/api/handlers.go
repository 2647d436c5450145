package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"insightai/internal/core"
	"insightai/internal/store"
)

type APIHandler struct {
	insightService *core.InsightService
	credentials    *core.CredentialStore
}

func NewAPIHandler(is *core.InsightService, creds *core.CredentialStore) *APIHandler {
	return &APIHandler{insightService: is, credentials: creds}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, kind core.ErrorKind) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
}

type AnalyzeRequest struct {
	Text        string `json:"text"`
	Language    string `json:"language"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (h *APIHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	lang, err := store.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	var image []byte
	if req.ImageBase64 != "" {
		image, err = base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "image_base64 is not valid base64", "")
			return
		}
	}

	item, err := h.insightService.Analyze(r.Context(), req.Text, lang, image)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// writeAnalyzeError maps the analysis error taxonomy onto HTTP statuses.
// Credential kinds get 401 so the client can prompt for re-selection;
// everything service-side gets 502 with the diagnostic message.
func (h *APIHandler) writeAnalyzeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrEmptyInput) || errors.Is(err, core.ErrUnknownLanguage) {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	kind, ok := core.KindOf(err)
	if !ok {
		log.Printf("Unclassified analysis error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze input", "")
		return
	}

	switch kind {
	case core.KindMissingCredential, core.KindInvalidCredential, core.KindStaleCredential:
		writeError(w, http.StatusUnauthorized, err.Error(), kind)
	default:
		writeError(w, http.StatusBadGateway, err.Error(), kind)
	}
}

func (h *APIHandler) ListHistoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.insightService.History())
}

func (h *APIHandler) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	h.insightService.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.insightService.Stats())
}

// Scenario is a canned quick-action the dashboard offers for trying
// the analyzer out.
type Scenario struct {
	Label   string            `json:"label"`
	Text    string            `json:"text"`
	Context store.ContextType `json:"context"`
}

var quickScenarios = []Scenario{
	{
		Label:   "Test Bank Notice",
		Text:    "Bank notice: KYC pending for account ending in 1234. Needs Aadhaar update.",
		Context: store.ContextPersonal,
	},
	{
		Label:   "Test Career Gap",
		Text:    "Reviewing my resume for a Senior DevOps position. I know AWS but not Kubernetes.",
		Context: store.ContextCareer,
	},
	{
		Label:   "Test Business Negotiation",
		Text:    "Vendor is asking for a 15% price hike on raw materials. How to negotiate?",
		Context: store.ContextBusiness,
	},
}

func (h *APIHandler) ScenariosHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quickScenarios)
}

type CredentialStatusResponse struct {
	Configured bool `json:"configured"`
}

func (h *APIHandler) CredentialStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CredentialStatusResponse{Configured: h.credentials.Configured()})
}

type SetCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// SetCredentialHandler installs a new key optimistically: it is treated
// as usable without a confirmation call, matching the interactive
// select-key flow which gives no synchronous confirmation either.
func (h *APIHandler) SetCredentialHandler(w http.ResponseWriter, r *http.Request) {
	var req SetCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "api_key is required", "")
		return
	}

	h.credentials.Set(req.APIKey)
	w.WriteHeader(http.StatusNoContent)
}
