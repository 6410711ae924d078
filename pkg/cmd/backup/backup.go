package backup

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/backup"
	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/internal/state"
)

var newBackup = func(ctx context.Context, cfg config.BackupConfig, logger *zap.Logger) (*backup.Backup, error) {
	return backup.New(ctx, cfg, logger)
}

func NewCmdBackup(s *state.State) *cobra.Command {
	var bucket, prefix string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload all notes to S3.",
		Long: heredoc.Doc(`
			Uploads every file below the base path to the bucket configured
			under backup.bucket, using the standard AWS credential chain.

			Examples:
			  notepy config set backup.bucket my-notes
			  notepy backup
			  notepy backup --prefix laptop
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.Persistence.Backup()
			if bucket != "" {
				cfg.Bucket = bucket
			}
			if prefix != "" {
				cfg.Prefix = prefix
			}

			b, err := newBackup(cmd.Context(), cfg, s.Logger.Named("backup"))
			if err != nil {
				return err
			}

			result, err := b.Run(cmd.Context(), s.Persistence.BasePath())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d files (%d bytes) to %s\n",
				result.Files, result.Bytes, b.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Override backup.bucket.")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Override backup.prefix.")

	return cmd
}
