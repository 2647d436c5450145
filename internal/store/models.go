package store

import (
	"fmt"
	"time"
)

// Language selects the natural language the model must answer in.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
	LanguageMarathi Language = "Marathi"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish, LanguageHindi, LanguageMarathi:
		return Language(s), nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

func (l Language) Valid() bool {
	_, err := ParseLanguage(string(l))
	return err == nil
}

// ContextType is the classification the model assigns to an insight.
// The model's returned value is authoritative over the user's hint.
type ContextType string

const (
	ContextPersonal ContextType = "Personal"
	ContextCareer   ContextType = "Career"
	ContextBusiness ContextType = "Business"
	ContextGeneral  ContextType = "General"
)

func (c ContextType) Valid() bool {
	switch c {
	case ContextPersonal, ContextCareer, ContextBusiness, ContextGeneral:
		return true
	}
	return false
}

// InsightResponse is the structured result of one analysis.
// All four fields are required; a reply missing any of them is rejected.
type InsightResponse struct {
	Context    ContextType `json:"context"`
	Understand string      `json:"understand"`
	Grow       string      `json:"grow"`
	Act        string      `json:"act"`
}

type HistoryItem struct {
	ID        string          `json:"id"` // Time-derived, unique per item
	Timestamp time.Time       `json:"timestamp"`
	Input     string          `json:"input"`
	Language  Language        `json:"language"`
	Response  InsightResponse `json:"response"`
}

// Stats holds the per-context history counts shown on the dashboard.
type Stats struct {
	Personal int `json:"personal"`
	Career   int `json:"career"`
	Business int `json:"business"`
}
