package core

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"insightai/internal/store"
)

const defaultAnalyzeTimeout = 60 * time.Second

// Label recorded in history when the user supplied only an image.
const documentAnalysisLabel = "Document Analysis"

var (
	// ErrEmptyInput is returned when neither text nor an image was
	// supplied. No model call is made and nothing is recorded.
	ErrEmptyInput = errors.New("either text or an image is required")

	// ErrUnknownLanguage is returned for a language outside the
	// supported set.
	ErrUnknownLanguage = errors.New("unsupported language")
)

// InsightGenerator is the single call contract to the external model.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, req InsightRequest) (*store.InsightResponse, error)
}

// InsightService orchestrates one analysis: input validation, the model
// call, and recording the successful result in history. Failures of any
// kind leave the history untouched.
type InsightService struct {
	generator InsightGenerator
	history   *store.HistoryStore
	timeout   time.Duration
}

func NewInsightService(generator InsightGenerator, history *store.HistoryStore, timeout time.Duration) *InsightService {
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	return &InsightService{
		generator: generator,
		history:   history,
		timeout:   timeout,
	}
}

// Analyze runs one end-to-end analysis and returns the recorded history
// item on success. Each invocation is independent: no retries, no
// deduplication, and concurrent calls simply record in completion order.
func (s *InsightService) Analyze(ctx context.Context, text string, lang store.Language, image []byte) (*store.HistoryItem, error) {
	if strings.TrimSpace(text) == "" && len(image) == 0 {
		return nil, ErrEmptyInput
	}
	if !lang.Valid() {
		return nil, ErrUnknownLanguage
	}

	// The upstream call has no cancellation of its own, so bound it
	// here to avoid suspending the caller indefinitely.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	analysisID := uuid.NewString()
	insight, err := s.generator.GenerateInsight(ctx, InsightRequest{
		Text:     text,
		Language: lang,
		Image:    image,
	})
	if err != nil {
		if kind, ok := KindOf(err); ok {
			log.Printf("analysis %s failed (%s): %v", analysisID, kind, err)
		} else {
			log.Printf("analysis %s failed: %v", analysisID, err)
		}
		return nil, err
	}

	input := text
	if strings.TrimSpace(input) == "" {
		input = documentAnalysisLabel
	}

	now := time.Now()
	item := store.HistoryItem{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Timestamp: now,
		Input:     input,
		Language:  lang,
		Response:  *insight,
	}
	s.history.Record(item)

	log.Printf("analysis %s succeeded (context=%s)", analysisID, insight.Context)
	return &item, nil
}

func (s *InsightService) History() []store.HistoryItem {
	return s.history.All()
}

func (s *InsightService) ClearHistory() {
	s.history.Clear()
}

func (s *InsightService) Stats() store.Stats {
	return s.history.Stats()
}
