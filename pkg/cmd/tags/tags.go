package tags

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
	"github.com/Paintersrp/notepy/pkg/shared/arg"
)

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List and edit note tags.",
		Long: heredoc.Doc(`
			Without a subcommand, lists every tag in use together with the
			number of notes carrying it.

			Examples:
			  notepy tags
			  notepy tags list Groceries
			  notepy tags add Groceries shopping, weekly
			  notepy tags remove Groceries weekly
			  notepy tags set Groceries home
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAll(cmd, s)
		},
	}

	cmd.AddCommand(
		newCmdList(s),
		newCmdEdit(s, "set", "Replace the tags of a note.", setTags),
		newCmdEdit(s, "add", "Add tags to a note.", addTags),
		newCmdEdit(s, "remove", "Remove tags from a note.", removeTags),
	)

	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list [note]",
		Short: "List all tags, or the tags of a single note.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listAll(cmd, s)
			}
			note, err := cmdpkg.ResolveNote(cmd, s, args)
			if err != nil {
				return err
			}
			for _, tag := range note.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func listAll(cmd *cobra.Command, s *state.State) error {
	counts := make(map[string]int)
	for _, note := range s.Notes.Query("", nil, false) {
		for _, tag := range note.Tags() {
			counts[tag]++
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tag := range s.Notes.Tags() {
		fmt.Fprintf(w, "%s\t%d\n", tag, counts[tag])
	}
	return w.Flush()
}

type editFunc func(current, given []string) []string

func newCmdEdit(s *state.State, use, short string, edit editFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <note> [tags...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cmdpkg.ResolveNote(cmd, s, args[:1])
			if err != nil {
				return err
			}
			given, err := arg.ParseTags(args[1:])
			if err != nil {
				return err
			}
			return apply(cmd, note, edit(note.Tags(), given))
		},
	}
}

func apply(cmd *cobra.Command, note *model.Note, tags []string) error {
	if err := note.SetTags(tags); err != nil {
		return err
	}
	for _, tag := range note.Tags() {
		fmt.Fprintln(cmd.OutOrStdout(), tag)
	}
	return nil
}

func setTags(_, given []string) []string { return given }

func addTags(current, given []string) []string {
	return append(current, given...)
}

func removeTags(current, given []string) []string {
	return slices.DeleteFunc(current, func(tag string) bool {
		return slices.Contains(given, tag)
	})
}
