package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"insightai/internal/store"
)

func TestClassifyCallError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "invalid key",
			err:  fmt.Errorf("googleapi: Error 400: API key not valid. Please pass a valid API key."),
			want: KindInvalidCredential,
		},
		{
			name: "stale key",
			err:  fmt.Errorf("googleapi: Error 404: Requested entity was not found."),
			want: KindStaleCredential,
		},
		{
			name: "rate limit",
			err:  fmt.Errorf("googleapi: Error 429: Resource has been exhausted"),
			want: KindServiceUnavailable,
		},
		{
			name: "generic transport failure",
			err:  errors.New("connection reset by peer"),
			want: KindServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aerr := classifyCallError(tt.err)
			if aerr.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", aerr.Kind, tt.want)
			}
			if !errors.Is(aerr, tt.err) {
				t.Errorf("classified error does not wrap the original")
			}
			if tt.want == KindServiceUnavailable && aerr.Message != tt.err.Error() {
				t.Errorf("Message = %q, want original text %q preserved", aerr.Message, tt.err.Error())
			}
		})
	}
}

func TestParseInsight_RoundTrip(t *testing.T) {
	raw := `{"context":"Career","understand":"You lack k8s experience.","grow":"Learn Kubernetes.","act":"1. Enroll in a course."}`

	insight, err := parseInsight(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := store.InsightResponse{
		Context:    store.ContextCareer,
		Understand: "You lack k8s experience.",
		Grow:       "Learn Kubernetes.",
		Act:        "1. Enroll in a course.",
	}
	if *insight != want {
		t.Errorf("parseInsight() = %+v, want %+v", *insight, want)
	}
}

func TestParseInsight_MissingFieldIsDeterministic(t *testing.T) {
	raw := `{"context":"Personal","understand":"u","grow":"g"}`

	// Same malformed input must classify identically every time, with
	// no partial object escaping.
	for i := 0; i < 2; i++ {
		insight, err := parseInsight(raw)
		if insight != nil {
			t.Fatalf("attempt %d: got partial insight %+v, want nil", i+1, insight)
		}
		kind, ok := KindOf(err)
		if !ok || kind != KindMalformedResponse {
			t.Fatalf("attempt %d: kind = %v, want malformed_response", i+1, kind)
		}
		if !strings.Contains(err.Error(), "act") {
			t.Errorf("attempt %d: error should name the missing field: %v", i+1, err)
		}
	}
}

func TestParseInsight_InvalidJSON(t *testing.T) {
	insight, err := parseInsight("not valid json {{{")
	if insight != nil {
		t.Fatalf("got insight %+v, want nil", insight)
	}
	if kind, ok := KindOf(err); !ok || kind != KindMalformedResponse {
		t.Errorf("kind = %v, want malformed_response", kind)
	}
}

func TestParseInsight_UnknownContextRejected(t *testing.T) {
	raw := `{"context":"Finance","understand":"u","grow":"g","act":"a"}`

	insight, err := parseInsight(raw)
	if insight != nil {
		t.Fatalf("got insight %+v, want nil", insight)
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindMalformedResponse {
		t.Errorf("kind = %v, want malformed_response", kind)
	}
	if !strings.Contains(err.Error(), "Finance") {
		t.Errorf("error should carry the unknown tag: %v", err)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			want: "",
		},
		{
			name: "concatenates text parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{
						Parts: []genai.Part{genai.Text(`{"context":`), genai.Text(`"General"}`)},
					},
				}},
			},
			want: `{"context":"General"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText(tt.resp); got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateInsight_MissingCredential(t *testing.T) {
	for _, key := range []string{"", "YOUR_API_KEY", "PLACEHOLDER_API_KEY"} {
		svc := NewLLMService(NewCredentialStore(key), "")

		// The gate runs before any client is constructed, so this
		// resolves without touching the network.
		insight, err := svc.GenerateInsight(context.Background(), InsightRequest{
			Text:     "hello",
			Language: store.LanguageEnglish,
		})
		if insight != nil {
			t.Fatalf("key %q: got insight %+v, want nil", key, insight)
		}
		if kind, ok := KindOf(err); !ok || kind != KindMissingCredential {
			t.Errorf("key %q: kind = %v, want missing_credential", key, kind)
		}
	}
}

func TestCredentialStore_OptimisticSet(t *testing.T) {
	creds := NewCredentialStore("")
	if creds.Configured() {
		t.Fatal("empty store should not be configured")
	}

	creds.Set("some-runtime-key")
	if !creds.Configured() {
		t.Error("store should report configured immediately after Set")
	}

	key, ok := creds.Resolve()
	if !ok || key != "some-runtime-key" {
		t.Errorf("Resolve() = %q, %v", key, ok)
	}
}
