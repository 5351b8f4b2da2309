package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/config"
	"gloss/internal/domain"
)

func newResolveCmd(cfg *config.Config, opts *options) *cobra.Command {
	flags := &overrideFlags{}
	c := &cobra.Command{
		Use:   "resolve KEY [name=value ...]",
		Short: "Resolve a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := messageKey(args[0])
			if err != nil {
				return err
			}
			replacements, err := domain.ParseReplacements(args[1:])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			if err := flags.apply(s.resolver); err != nil {
				return err
			}

			text, err := s.resolver.Resolve(key, replacements, opts.locale)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	flags.bind(c)
	return c
}

func newChoiceCmd(cfg *config.Config, opts *options) *cobra.Command {
	flags := &overrideFlags{}
	c := &cobra.Command{
		Use:   "choice KEY COUNT [name=value ...]",
		Short: "Resolve a message and pick its plural form for COUNT",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := messageKey(args[0])
			if err != nil {
				return err
			}
			replacements, err := domain.ParseReplacements(args[2:])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			if err := flags.apply(s.resolver); err != nil {
				return err
			}

			text, err := s.resolver.Choice(key, args[1], replacements, opts.locale)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	flags.bind(c)
	return c
}

func newHasCmd(cfg *config.Config, opts *options) *cobra.Command {
	flags := &overrideFlags{}
	c := &cobra.Command{
		Use:   "has KEY",
		Short: "Report whether a message, override or extension exists for KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := messageKey(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			if err := flags.apply(s.resolver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.resolver.Has(key, opts.locale))
			return nil
		},
	}
	flags.bind(c)
	return c
}

func messageKey(arg string) (string, error) {
	key := strings.TrimSpace(arg)
	if key == "" {
		return "", domain.ErrEmptyKey
	}
	return key, nil
}
