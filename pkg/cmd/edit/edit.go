package edit

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/editor"
	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
)

var openEditor = editor.Open

func NewCmdEdit(s *state.State) *cobra.Command {
	var editorName string

	cmd := &cobra.Command{
		Use:     "edit [name]",
		Aliases: []string{"e", "open"},
		Short:   "Open a note in your editor.",
		Long: heredoc.Doc(`
			Opens the Markdown file of a note in the configured editor. Without
			a name a fuzzy picker lists all notes.

			Examples:
			  notepy edit Groceries
			  notepy edit --editor nano
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cmdpkg.ResolveNote(cmd, s, args)
			if err != nil {
				return err
			}

			name := editorName
			if name == "" {
				name = s.Persistence.Editor()
			}
			if err := openEditor(note.FilePath(), name); err != nil {
				return err
			}
			return note.Reload()
		},
	}

	cmd.Flags().StringVar(&editorName, "editor", "", "Editor to use instead of the configured one.")

	return cmd
}
