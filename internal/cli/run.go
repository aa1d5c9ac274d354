package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"playground-bot/internal/application/usecases"
	"playground-bot/internal/config"
	"playground-bot/internal/domain/user"
	"playground-bot/internal/infrastructure/filesystem"
	"playground-bot/internal/infrastructure/persistence"
	"playground-bot/internal/infrastructure/playground"
	"playground-bot/internal/infrastructure/telegram"
	itelegram "playground-bot/internal/interfaces/telegram"
	"playground-bot/internal/interfaces/telegram/handlers"
)

func runBot(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	snapshotter, closeSnapshotter, err := openSnapshotter(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeSnapshotter()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeUseCase := usecases.NewStoreUseCase(snapshotter, logger)
	store := storeUseCase.Load(ctx)

	// Initialize use cases
	client := playground.NewClient(cfg.Playground.URL, nil)
	executionUseCase := usecases.NewExecutionUseCase(store, client, logger)
	commandUseCase := usecases.NewCommandUseCase(store, executionUseCase, logger)

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug, cfg.Telegram.PollTimeout, logger)
	if err != nil {
		return err
	}

	if err := bot.SetupCommands(); err != nil {
		logger.Warn("Failed to setup bot commands, they won't show in Telegram's menu", zap.Error(err))
	}

	dispatcher := itelegram.NewDispatcher(commandUseCase, bot, logger)
	handler := handlers.NewBotHandler(bot, dispatcher, logger)

	logger.Info("Starting Rust Playground Bot...",
		zap.String("version", version),
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("store_path", cfg.Store.Path))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return handler.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		return nil
	})
	runErr := g.Wait()

	// the loop has returned, nothing else touches the store
	storeUseCase.Save(context.Background(), store)

	if runErr != nil {
		return fmt.Errorf("bot error: %w", runErr)
	}
	return nil
}

// openSnapshotter returns the configured persistence backend and a func
// releasing it
func openSnapshotter(cfg config.StoreConfig, logger *zap.Logger) (user.PreferencesSnapshotter, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := persistence.OpenSQLiteDB(cfg.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return persistence.NewUserPreferencesRepository(db), db.Close, nil
	case config.BackendJSON:
		return filesystem.NewPreferencesFile(cfg.Path), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
