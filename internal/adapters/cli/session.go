package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"gloss/internal/application"
	"gloss/internal/config"
	"gloss/internal/infrastructure/database"
	"gloss/internal/infrastructure/i18n"
)

// session is a loaded catalog with a resolver in front of it.
type session struct {
	catalog  *i18n.Catalog
	resolver *application.Resolver
}

// openSession loads the embedded catalog, then --catalog-dir, then the
// database rows when DATABASE_URL is set. Later sources win on conflicts.
func openSession(ctx context.Context, cfg *config.Config, opts *options) (*session, error) {
	catalog := i18n.NewCatalog(opts.locale, cfg.FallbackLocale)

	if err := i18n.LoadDefaults(catalog); err != nil {
		return nil, err
	}
	if opts.catalogDir != "" {
		if err := i18n.LoadFS(catalog, os.DirFS(opts.catalogDir)); err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.catalogDir, err)
		}
	}
	if cfg.DatabaseURL != "" {
		if err := importDatabase(ctx, catalog, cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	return &session{
		catalog:  catalog,
		resolver: application.NewResolver(catalog, application.WithMaxDepth(cfg.MaxDepth)),
	}, nil
}

func importDatabase(ctx context.Context, catalog *i18n.Catalog, dsn string) error {
	pool, err := database.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	msgs, err := database.NewMessageRepository(pool).ListMessages(ctx)
	if err != nil {
		return err
	}
	n := catalog.ImportMessages(msgs)
	log.Info().Str("sys", "cli").Int("count", n).Msg("Database messages imported")
	return nil
}
