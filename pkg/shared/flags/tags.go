package flags

import (
	"github.com/spf13/cobra"
)

func AddTags(cmd *cobra.Command, usage string) {
	cmd.Flags().StringSliceP("tag", "t", nil, usage)
}

func HandleTags(cmd *cobra.Command) ([]string, error) {
	return cmd.Flags().GetStringSlice("tag")
}
