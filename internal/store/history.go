package store

import "sync"

// HistoryCapacity is the fixed upper bound on retained history items.
const HistoryCapacity = 20

// HistoryStore keeps a bounded, newest-first log of successful analyses
// for the lifetime of the running process. It is safe for concurrent use
// by HTTP handler goroutines.
type HistoryStore struct {
	mu    sync.Mutex
	items []HistoryItem
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		items: make([]HistoryItem, 0, HistoryCapacity),
	}
}

// Record prepends item and drops anything past HistoryCapacity in the
// same operation, so the store never grows beyond the bound.
func (h *HistoryStore) Record(item HistoryItem) {
	h.mu.Lock()
	defer h.mu.Unlock()

	updated := make([]HistoryItem, 0, len(h.items)+1)
	updated = append(updated, item)
	updated = append(updated, h.items...)
	if len(updated) > HistoryCapacity {
		updated = updated[:HistoryCapacity]
	}
	h.items = updated
}

// All returns a copy of the log, newest first.
func (h *HistoryStore) All() []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

func (h *HistoryStore) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = h.items[:0]
}

// Stats counts the retained items per model-assigned context.
func (h *HistoryStore) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	var s Stats
	for _, item := range h.items {
		switch item.Response.Context {
		case ContextPersonal:
			s.Personal++
		case ContextCareer:
			s.Career++
		case ContextBusiness:
			s.Business++
		}
	}
	return s
}
