package export

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
)

func NewCmdExport(s *state.State) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a note as a standalone HTML page.",
		Long: heredoc.Doc(`
			Renders a note into an HTML document with the shared style.css
			inlined. Images and links resolve relative to the note directory,
			so screenshots show up when the page is opened in a browser.

			Examples:
			  notepy export Groceries > groceries.html
			  notepy export Groceries -o groceries.html
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cmdpkg.ResolveNote(cmd, s, args)
			if err != nil {
				return err
			}

			doc, err := s.Renderer.Document(note)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %q to %s\n", note.Name(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to this file instead of stdout.")

	return cmd
}
