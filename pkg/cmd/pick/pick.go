package pick

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/editor"
	"github.com/Paintersrp/notepy/internal/fzf"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/shared/flags"
)

var (
	openEditor = editor.Open
	runFinder  = func(f *fzf.FuzzyFinder, query string) (*model.Note, error) {
		return f.Run(query)
	}
)

func NewCmdPick(s *state.State) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:     "pick [query]",
		Aliases: []string{"find", "f"},
		Short:   "Fuzzy find a note.",
		Long: heredoc.Doc(`
			Opens a fuzzy finder over all notes with a rendered preview and
			prints the name of the chosen note. Use --edit to open it in your
			editor instead.

			Examples:
			  notepy pick
			  notepy pick grocer --tag home
			  notepy pick --edit
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := flags.HandleTags(cmd)
			if err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Notes.Query("", tags, false), s.Renderer, "Pick a note")
			note, err := runFinder(finder, query)
			if err != nil {
				return err
			}
			s.Notes.Select(note.Name())

			if !edit {
				fmt.Fprintln(cmd.OutOrStdout(), note.Name())
				return nil
			}
			if err := openEditor(note.FilePath(), s.Persistence.Editor()); err != nil {
				return err
			}
			return note.Reload()
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the chosen note in the configured editor.")
	flags.AddTags(cmd, "Only offer notes carrying this tag (repeatable).")

	return cmd
}
