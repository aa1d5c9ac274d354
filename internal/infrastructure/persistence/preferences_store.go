package persistence

import (
	"sync"

	"playground-bot/internal/domain/user"
)

// PreferencesStore is the process-wide preference table. A single mutex
// guards every read and write.
type PreferencesStore struct {
	mu    sync.Mutex
	prefs map[user.TelegramID]user.Preferences
}

var _ user.PreferencesRepository = (*PreferencesStore)(nil)

// NewPreferencesStore creates an empty store
func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{prefs: make(map[user.TelegramID]user.Preferences)}
}

// Get returns the preferences of id, or the defaults if none are stored
func (s *PreferencesStore) Get(id user.TelegramID) user.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.prefs[id]; ok {
		return p
	}
	return user.NewPreferences()
}

// Set creates or overwrites the preferences of id
func (s *PreferencesStore) Set(id user.TelegramID, preferences user.Preferences) {
	preferences.Code = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[id] = preferences
}

// Update runs fn on the current preferences of id and stores the result
// without releasing the lock in between
func (s *PreferencesStore) Update(id user.TelegramID, fn func(*user.Preferences)) user.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[id]
	if !ok {
		p = user.NewPreferences()
	}
	fn(&p)
	p.Code = ""
	s.prefs[id] = p
	return p
}

// Len returns the number of users with stored preferences
func (s *PreferencesStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.prefs)
}

// Snapshot returns a copy of the whole table
func (s *PreferencesStore) Snapshot() map[user.TelegramID]user.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[user.TelegramID]user.Preferences, len(s.prefs))
	for id, p := range s.prefs {
		out[id] = p
	}
	return out
}

// Replace swaps the table for a copy of all
func (s *PreferencesStore) Replace(all map[user.TelegramID]user.Preferences) {
	prefs := make(map[user.TelegramID]user.Preferences, len(all))
	for id, p := range all {
		p.Code = ""
		prefs[id] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = prefs
}
