package rename

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
)

func NewCmdRename(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rename <name> <new name>",
		Aliases: []string{"mv"},
		Short:   "Rename a note.",
		Long: heredoc.Doc(`
			Renames a note together with its tags and attachments. The new
			name must not belong to another note.

			Example:
			  notepy rename Untitled "Reading list"
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cmdpkg.ResolveNote(cmd, s, args[:1])
			if err != nil {
				return err
			}

			oldName := note.Name()
			if err := note.SetName(args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", oldName, note.Name())
			return nil
		},
	}

	return cmd
}
