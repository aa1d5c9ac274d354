package user

import "context"

// PreferencesRepository is the live per-user preference table
type PreferencesRepository interface {
	// Get returns the stored preferences, or the defaults for an unknown user
	Get(id TelegramID) Preferences

	// Set creates or overwrites the preferences of a user
	Set(id TelegramID, preferences Preferences)

	// Update applies fn to the user's preferences and stores the result as
	// one atomic step
	Update(id TelegramID, fn func(*Preferences)) Preferences
}

// PreferencesSnapshotter persists the whole preference table at once
type PreferencesSnapshotter interface {
	// LoadAll reads every stored record
	LoadAll(ctx context.Context) (map[TelegramID]Preferences, error)

	// SaveAll replaces the stored table with all
	SaveAll(ctx context.Context, all map[TelegramID]Preferences) error
}
