package write

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
)

func NewCmdWrite(s *state.State) *cobra.Command {
	var (
		file   string
		append bool
	)

	cmd := &cobra.Command{
		Use:   "write <name>",
		Short: "Replace the contents of a note from stdin or a file.",
		Long: heredoc.Doc(`
			Writes new contents into a note, creating it when it does not
			exist yet. Contents are read from stdin unless --file is given.

			Examples:
			  echo "- eggs" | notepy write Groceries --append
			  notepy write Groceries --file ~/groceries.md
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file != "" {
				data, err = os.ReadFile(file)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read contents: %w", err)
			}
			return run(s, args[0], string(data), append)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read contents from this file instead of stdin.")
	cmd.Flags().BoolVarP(&append, "append", "a", false, "Append to the note instead of replacing it.")

	return cmd
}

func run(s *state.State, name, contents string, appendContents bool) error {
	note, ok := s.Notes.Get(name)
	if !ok {
		var err error
		note, err = s.Notes.Create(name)
		if err != nil {
			return err
		}
	}

	if appendContents {
		contents = joinBlocks(note.Contents(), contents)
	}
	return note.SetContents(contents)
}

// joinBlocks appends addition on a new line.
func joinBlocks(existing, addition string) string {
	if existing == "" {
		return addition
	}
	if existing[len(existing)-1] != '\n' {
		existing += "\n"
	}
	return existing + addition
}
