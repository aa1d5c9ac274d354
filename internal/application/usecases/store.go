package usecases

import (
	"context"

	"go.uber.org/zap"

	"playground-bot/internal/domain/user"
	"playground-bot/internal/infrastructure/persistence"
)

// StoreUseCase loads the preference table at startup and persists it at
// shutdown. Neither direction ever fails the caller.
type StoreUseCase struct {
	snapshotter user.PreferencesSnapshotter
	logger      *zap.Logger
}

// NewStoreUseCase creates a new store use case
func NewStoreUseCase(snapshotter user.PreferencesSnapshotter, logger *zap.Logger) *StoreUseCase {
	return &StoreUseCase{
		snapshotter: snapshotter,
		logger:      logger,
	}
}

// Load returns a store filled from the snapshot, or an empty store when the
// snapshot is missing or unreadable
func (uc *StoreUseCase) Load(ctx context.Context) *persistence.PreferencesStore {
	store := persistence.NewPreferencesStore()

	all, err := uc.snapshotter.LoadAll(ctx)
	if err != nil {
		uc.logger.Warn("Starting with empty preferences", zap.Error(err))
		return store
	}

	store.Replace(all)
	uc.logger.Info("Loaded user preferences", zap.Int("users", store.Len()))
	return store
}

// Save writes the whole store. Failures are logged and dropped.
func (uc *StoreUseCase) Save(ctx context.Context, store *persistence.PreferencesStore) {
	snapshot := store.Snapshot()
	if err := uc.snapshotter.SaveAll(ctx, snapshot); err != nil {
		uc.logger.Error("Failed to save user preferences", zap.Error(err), zap.Int("users", len(snapshot)))
		return
	}
	uc.logger.Info("Saved user preferences", zap.Int("users", len(snapshot)))
}
