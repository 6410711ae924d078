package flags

import (
	"github.com/spf13/cobra"
)

func AddYes(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation.")
}

func HandleYes(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("yes")
}
