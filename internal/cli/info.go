package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playground-bot/internal/application/usecases"
	"playground-bot/internal/domain/user"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <telegram-user-id>",
		Short: "Print the stored settings of a user",
		Long:  "Loads the preference store without connecting to Telegram and prints\nwhat /info would reply to the given user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := user.ParseTelegramID(args[0])
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := cfg.Store.Validate(); err != nil {
				return err
			}

			snapshotter, closeSnapshotter, err := openSnapshotter(cfg.Store, logger)
			if err != nil {
				return err
			}
			defer closeSnapshotter()

			store := usecases.NewStoreUseCase(snapshotter, logger).Load(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), usecases.InfoText(store.Get(id)))
			return nil
		},
	}
}
