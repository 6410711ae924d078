package new

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/editor"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/shared/arg"
	"github.com/Paintersrp/notepy/pkg/shared/flags"
)

var openEditor = editor.Open

func NewCmdNew(s *state.State) *cobra.Command {
	var (
		edit  bool
		stdin bool
	)

	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a new, empty note. Without a name the note is called
			"Untitled", or "Untitled N" when that name is taken.

			Examples:
			  notepy new
			  notepy new "Meeting notes" --tag work --tag weekly
			  echo "# Draft" | notepy new Draft --stdin
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawTags, err := flags.HandleTags(cmd)
			if err != nil {
				return err
			}
			tags, err := arg.ParseTags(rawTags)
			if err != nil {
				return err
			}
			return run(cmd, s, args, tags, edit, stdin)
		},
	}

	flags.AddTags(cmd, "Tag for the new note (repeatable).")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the new note in the configured editor.")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the note contents from stdin.")
	cmd.MarkFlagsMutuallyExclusive("edit", "stdin")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string, tags []string, edit, stdin bool) error {
	var (
		note *model.Note
		err  error
	)
	if len(args) == 1 {
		note, err = s.Notes.Create(args[0])
	} else {
		note, err = s.Notes.AddNew()
	}
	if err != nil {
		return err
	}

	if len(tags) > 0 {
		if err := note.SetTags(tags); err != nil {
			return err
		}
	}

	if stdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if err := note.SetContents(string(data)); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), note.Name())

	if edit {
		if err := openEditor(note.FilePath(), s.Persistence.Editor()); err != nil {
			return err
		}
		return note.Reload()
	}
	return nil
}
