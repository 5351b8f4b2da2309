package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gloss/internal/config"
	"gloss/internal/domain/entities"
	"gloss/internal/infrastructure/database"
	"gloss/internal/infrastructure/i18n"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newCatalogCmd(cfg *config.Config, opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and edit message catalogs",
	}
	c.AddCommand(
		newCatalogLocalesCmd(cfg, opts),
		newCatalogListCmd(cfg),
		newCatalogSetCmd(cfg),
	)
	return c
}

func newCatalogLocalesCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales of the loaded catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			for _, locale := range s.catalog.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), locale)
			}
			return nil
		},
	}
}

func newCatalogListCmd(cfg *config.Config) *cobra.Command {
	var locale string
	c := &cobra.Command{
		Use:   "list",
		Short: "List the messages stored in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			repo := database.NewMessageRepository(pool)

			var msgs []entities.Message
			if locale != "" {
				msgs, err = repo.ListMessagesByLocale(cmd.Context(), i18n.Canonical(locale))
			} else {
				msgs, err = repo.ListMessages(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range msgs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Locale, m.Key, m.Value)
			}
			return w.Flush()
		},
	}
	c.Flags().StringVar(&locale, "only", "", "Only list messages of this locale")
	return c
}

func newCatalogSetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set LOCALE KEY VALUE",
		Short: "Store a message in the database",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			key, err := messageKey(args[1])
			if err != nil {
				return err
			}
			pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			msg := &entities.Message{Locale: i18n.Canonical(args[0]), Key: key, Value: args[2]}
			if err := database.NewMessageRepository(pool).SaveMessage(cmd.Context(), msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s saved\n", msg.Locale, msg.Key)
			return nil
		},
	}
}
