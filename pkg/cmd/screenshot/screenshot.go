package screenshot

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/persistence"
	"github.com/Paintersrp/notepy/internal/state"
	cmdpkg "github.com/Paintersrp/notepy/pkg/cmd"
)

var writeClipboard = clipboard.WriteAll

func NewCmdScreenshot(s *state.State) *cobra.Command {
	var (
		appendLink bool
		copyLink   bool
	)

	cmd := &cobra.Command{
		Use:     "screenshot [name]",
		Aliases: []string{"shot"},
		Short:   "Capture a screenshot into a note.",
		Long: heredoc.Doc(`
			Runs the configured screenshot_command and stores the image in the
			note directory. The file name is printed, and can be appended to
			the note as a Markdown image or copied to the clipboard.

			Examples:
			  notepy screenshot Groceries --append
			  notepy screenshot Groceries --copy
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cmdpkg.ResolveNote(cmd, s, args)
			if err != nil {
				return err
			}

			filename, err := note.Screenshot()
			if errors.Is(err, persistence.ErrScreenshotUnavailable) {
				return fmt.Errorf("screenshot failed, check screenshot_command in %s: %w", s.ConfigPath, err)
			}
			if err != nil {
				return err
			}

			if appendLink {
				if err := note.AppendScreenshot(filename); err != nil {
					return err
				}
			}
			if copyLink {
				if err := writeClipboard(model.ScreenshotLink(filename)); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), filename)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&appendLink, "append", "a", false, "Append an image link to the note.")
	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Copy the image link to the clipboard.")

	return cmd
}
