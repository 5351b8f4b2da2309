package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gloss/internal/adapters/discord"
	"gloss/internal/config"
)

func newBotCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve message resolution over Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}

			bot, err := discord.NewBot(cfg, s.resolver)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bot.Start(ctx)
		},
	}
}
