package show

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
)

type options struct {
	html    bool
	raw     bool
	outline bool
	width   int
}

func NewCmdShow(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "show [name]",
		Aliases: []string{"cat"},
		Short:   "Print a note.",
		Long: heredoc.Doc(`
			Prints a note rendered for the terminal. When stdout is not a
			terminal the Markdown source is printed instead.

			Examples:
			  notepy show Groceries
			  notepy show Groceries --html
			  notepy show Groceries --outline
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.html, "html", false, "Print the note as an HTML fragment.")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the Markdown source.")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "Print the headings and attachments of the note.")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Word wrap width for terminal output.")
	cmd.MarkFlagsMutuallyExclusive("html", "raw", "outline")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string, opts options) error {
	note, err := cmdpkg.ResolveNote(cmd, s, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.html:
		html, err := s.Renderer.HTML(note.Contents())
		if err != nil {
			return err
		}
		fmt.Fprint(out, html)
	case opts.outline:
		outline := s.Renderer.ParseOutline(note.Contents())
		if title := outline.Title(); title != "" {
			fmt.Fprintf(out, "title: %s\n", title)
		}
		for _, h := range outline.Headings {
			fmt.Fprintf(out, "%s%s (line %d)\n", strings.Repeat("  ", h.Level-1), h.Text, h.Line)
		}
		for _, a := range outline.Attachments() {
			fmt.Fprintf(out, "attachment: %s\n", a)
		}
	case opts.raw || !cmdpkg.IsInteractive():
		fmt.Fprint(out, note.Contents())
	default:
		rendered, err := s.Renderer.Terminal(note.Contents(), opts.width)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	}
	return nil
}
