package config

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/internal/render"
	"github.com/Paintersrp/notepy/internal/state"
)

func NewCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "Show or change settings.",
		Long: heredoc.Doc(`
			Without a subcommand, prints every setting and the config file
			location.

			Examples:
			  notepy config
			  notepy config get theme
			  notepy config set theme dracula
			  notepy config set backup.bucket my-notes
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, s.Persistence.Config())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print all settings.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, s.Persistence.Config())
			},
		},
		&cobra.Command{
			Use:       "get <key>",
			Short:     "Print a single setting.",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := s.Persistence.Config().Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change a setting.",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				return set(s, args[0], args[1])
			},
		},
	)

	return cmd
}

func show(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", cfg.Path())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, key := range config.Keys {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	return w.Flush()
}

func set(s *state.State, key, value string) error {
	if key == "theme" {
		if err := render.ValidateTheme(value); err != nil {
			return err
		}
	}

	p := s.Persistence
	switch key {
	case "geometry":
		return p.SetGeometry(value)
	case "font_size":
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid font size: %q", value)
		}
		return p.SetFontSize(size)
	case "theme":
		if err := p.SetTheme(value); err != nil {
			return err
		}
		s.Renderer = render.New(p.Theme())
		return nil
	}

	return p.Config().Set(key, value)
}
