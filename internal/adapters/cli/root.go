package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gloss/internal/config"
	"gloss/internal/logging"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	locale     string
	catalogDir string
	logLevel   string
}

// NewRootCmd builds the gloss command tree. Flag defaults come from cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "gloss",
		Short:         "Resolve localized messages through runtime overrides",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if f := cmd.Flag("log-level"); f == nil || !f.Changed {
				return nil
			}
			switch opts.logLevel {
			case "debug", "info", "warn", "error":
			default:
				return fmt.Errorf("--log-level must be one of debug, info, warn, error; got %q", opts.logLevel)
			}
			logging.Setup(opts.logLevel, cfg.LogFormat, os.Stderr)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.locale, "locale", cfg.Locale, "Locale to resolve messages in")
	pf.StringVar(&opts.catalogDir, "catalog-dir", cfg.CatalogDir, "Directory of extra catalog files (toml, yaml, json)")
	pf.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newResolveCmd(cfg, opts),
		newChoiceCmd(cfg, opts),
		newHasCmd(cfg, opts),
		newCatalogCmd(cfg, opts),
		newMigrateCmd(cfg),
		newBotCmd(cfg, opts),
	)
	return cmd
}

// Execute runs the command tree and prints a failing command's error to stderr.
func Execute(cfg *config.Config) error {
	root := NewRootCmd(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
