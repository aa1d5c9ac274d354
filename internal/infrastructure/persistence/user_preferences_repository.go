package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"playground-bot/internal/domain/user"
)

type userPreferencesRepository struct {
	db *sql.DB
}

// NewUserPreferencesRepository creates a snapshotter backed by the
// user_preferences table
func NewUserPreferencesRepository(db *sql.DB) user.PreferencesSnapshotter {
	return &userPreferencesRepository{db: db}
}

// LoadAll retrieves the preferences of every user
func (r *userPreferencesRepository) LoadAll(ctx context.Context) (map[user.TelegramID]user.Preferences, error) {
	query := `
		SELECT telegram_id, backtrace, channel, crate_type, edition, mode, tests
		FROM user_preferences
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user preferences: %w", err)
	}
	defer rows.Close()

	all := make(map[user.TelegramID]user.Preferences)
	for rows.Next() {
		var id int64
		var p user.Preferences
		var channel, crateType, edition, mode string
		if err := rows.Scan(&id, &p.Backtrace, &channel, &crateType, &edition, &mode, &p.Tests); err != nil {
			return nil, fmt.Errorf("failed to scan preferences: %w", err)
		}
		p.Channel = user.Channel(channel)
		p.CrateType = user.CrateType(crateType)
		p.Edition = user.Edition(edition)
		p.Mode = user.Mode(mode)
		all[user.TelegramID(id)] = p.Normalize()
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}

	return all, nil
}

// SaveAll replaces the table contents with all
func (r *userPreferencesRepository) SaveAll(ctx context.Context, all map[user.TelegramID]user.Preferences) error {
	// Begin transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_preferences`); err != nil {
		return fmt.Errorf("failed to clear user preferences: %w", err)
	}

	insertQuery := `
		INSERT INTO user_preferences (telegram_id, backtrace, channel, crate_type, edition, mode, tests, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for id, p := range all {
		_, err = stmt.ExecContext(ctx, int64(id), p.Backtrace, string(p.Channel), string(p.CrateType),
			string(p.Edition), string(p.Mode), p.Tests)
		if err != nil {
			return fmt.Errorf("failed to save preferences for user %d: %w", int64(id), err)
		}
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
