// Package viewstate holds small pieces of client UI state that survive
// navigation: the grid/list view mode and the cookie-consent choice. State is
// loaded once on construction and written through on change.
package viewstate

import (
	"sync"

	"go.uber.org/zap"
)

// ViewMode values.
const (
	ModeGrid = "grid"
	ModeList = "list"
)

// Consent values.
const (
	ConsentAccepted = "accepted"
	ConsentDeclined = "declined"
)

// Storage keys, fixed for compatibility with previously persisted state.
const (
	viewModeKey = "layout-storage"
	consentKey  = "cookieConsent"
)

// Store is an explicit state container; inject it rather than reaching for a
// global. Reads observe a set immediately; the durable write happens on the
// same call.
type Store struct {
	mu      sync.RWMutex
	kv      KV
	log     *zap.Logger
	mode    string
	consent string
}

// New loads persisted state from kv. An absent or corrupt view-mode entry
// defaults to grid; an absent consent entry stays empty until the user
// chooses.
func New(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log, mode: ModeGrid}

	if raw, ok, err := kv.Get(viewModeKey); err != nil {
		log.Warn("load view mode failed", zap.Error(err))
	} else if ok {
		if mode := string(raw); mode == ModeGrid || mode == ModeList {
			s.mode = mode
		}
	}

	if raw, ok, err := kv.Get(consentKey); err != nil {
		log.Warn("load cookie consent failed", zap.Error(err))
	} else if ok {
		if choice := string(raw); choice == ConsentAccepted || choice == ConsentDeclined {
			s.consent = choice
		}
	}

	return s
}

func (s *Store) ViewMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetViewMode updates in-memory state and persists it. Unknown modes are
// ignored, matching the form's fixed toggle.
func (s *Store) SetViewMode(mode string) {
	if mode != ModeGrid && mode != ModeList {
		return
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	if err := s.kv.Set(viewModeKey, []byte(mode)); err != nil {
		s.log.Warn("persist view mode failed", zap.Error(err))
	}
}

// Consent returns the stored choice, or "" when the user has not chosen yet.
func (s *Store) Consent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consent
}

func (s *Store) SetConsent(choice string) {
	if choice != ConsentAccepted && choice != ConsentDeclined {
		return
	}
	s.mu.Lock()
	s.consent = choice
	s.mu.Unlock()

	if err := s.kv.Set(consentKey, []byte(choice)); err != nil {
		s.log.Warn("persist cookie consent failed", zap.Error(err))
	}
}
