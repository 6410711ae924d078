package list

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/shared/flags"
)

type options struct {
	filter  string
	reverse bool
	since   string
	long    bool
}

func NewCmdList(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, optionally filtered by text and tags.",
		Long: heredoc.Doc(`
			Lists all notes sorted by name.

			The filter matches case-insensitively against note names and
			contents. Every tag given with --tag must be present on a note for
			it to be listed.

			Examples:
			  notepy list --filter groceries
			  notepy list --tag work --tag urgent --reverse
			  notepy list --since "2024-01-01" -l
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := flags.HandleTags(cmd)
			if err != nil {
				return err
			}
			return run(cmd, s, opts, tags)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Only list notes whose name or contents contain this text.")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "Sort in reverse order.")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only list notes modified at or after this date.")
	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "Show tags and modification time.")
	flags.AddTags(cmd, "Only list notes carrying this tag (repeatable).")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options, tags []string) error {
	notes := s.Notes.Query(opts.filter, tags, opts.reverse)

	if opts.since != "" {
		since, err := dateparse.ParseLocal(opts.since)
		if err != nil {
			return fmt.Errorf("invalid --since date %q: %w", opts.since, err)
		}
		notes, err = modifiedSince(notes, since)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if !opts.long {
		for _, n := range notes {
			fmt.Fprintln(out, n.Name())
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, n := range notes {
		modified, err := n.ModTime()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			n.Name(),
			modified.Local().Format("2006-01-02 15:04"),
			strings.Join(n.Tags(), ", "),
		)
	}
	return w.Flush()
}

func modifiedSince(notes []*model.Note, since time.Time) ([]*model.Note, error) {
	result := make([]*model.Note, 0, len(notes))
	for _, n := range notes {
		modified, err := n.ModTime()
		if err != nil {
			return nil, err
		}
		if !modified.Before(since) {
			result = append(result, n)
		}
	}
	return result, nil
}
