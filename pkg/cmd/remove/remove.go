package remove

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
	"github.com/Paintersrp/notepy/pkg/shared/flags"
)

func NewCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note and all of its files.",
		Long: heredoc.Doc(`
			Deletes a note directory including tags, screenshots and other
			attachments. The deletion cannot be undone, so you are asked to
			confirm unless --yes is given.

			Examples:
			  notepy rm Groceries
			  notepy rm Groceries --yes
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, err := flags.HandleYes(cmd)
			if err != nil {
				return err
			}

			note, err := cmdpkg.ResolveNote(cmd, s, args)
			if err != nil {
				return err
			}

			if !yes {
				if !cmdpkg.IsInteractive() {
					return fmt.Errorf("refusing to delete %q without --yes", note.Name())
				}
				ok, err := cmdpkg.Confirm(fmt.Sprintf("Delete %q?", note.Name()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			name := note.Name()
			if err := note.Delete(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", name)
			return nil
		},
	}

	flags.AddYes(cmd)

	return cmd
}
