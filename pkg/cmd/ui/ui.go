package ui

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/internal/tui/notes"
)

var runUI = notes.Run

func NewCmdUI(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Browse and edit notes in the terminal UI.",
		Long: heredoc.Doc(`
			Opens a split view with the filterable note list on the left and
			a rendered preview on the right. Changes made by other programs
			show up automatically.

			Type / to filter; words starting with # filter by tag.

			Keys:
			  n  new note        r  rename          t  edit tags
			  e  open in editor  s  screenshot      d  delete
			  J/K scroll preview ctrl+r reload      q  quit
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(s)
		},
	}

	return cmd
}
