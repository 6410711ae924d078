package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/cmd/backup"
	configcmd "github.com/Paintersrp/notepy/pkg/cmd/config"
	"github.com/Paintersrp/notepy/pkg/cmd/edit"
	"github.com/Paintersrp/notepy/pkg/cmd/export"
	"github.com/Paintersrp/notepy/pkg/cmd/list"
	"github.com/Paintersrp/notepy/pkg/cmd/new"
	"github.com/Paintersrp/notepy/pkg/cmd/pick"
	"github.com/Paintersrp/notepy/pkg/cmd/remove"
	"github.com/Paintersrp/notepy/pkg/cmd/rename"
	"github.com/Paintersrp/notepy/pkg/cmd/screenshot"
	"github.com/Paintersrp/notepy/pkg/cmd/show"
	"github.com/Paintersrp/notepy/pkg/cmd/tags"
	"github.com/Paintersrp/notepy/pkg/cmd/ui"
	"github.com/Paintersrp/notepy/pkg/cmd/write"
)

type options struct {
	configPath string
	logFile    string
	verbose    bool
}

func NewCmdRoot(s *state.State) *cobra.Command {
	var opts options

	uiCmd := ui.NewCmdUI(s)

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Version: constants.Version,
		Short:   "Keep Markdown notes with tags and screenshots.",
		Long: heredoc.Doc(`
			A small note keeper. Every note is a directory holding a README.md,
			an optional tags.txt and any attachments such as screenshots.

			Running notepy without a command opens the terminal UI.

			Examples:
			  notepy new "Meeting notes" --tag work
			  notepy list --tag work
			  notepy edit "Meeting notes"
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, s, opts, cmd == cmd.Root() || cmd == uiCmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.Logger != nil {
				_ = s.Logger.Sync()
			}
			_ = s.Close()
		},
		Args: cobra.NoArgs,
		RunE: uiCmd.RunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default ~/.notepy/config.yml).")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr.")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging.")
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))

	cmd.AddCommand(
		uiCmd,
		list.NewCmdList(s),
		show.NewCmdShow(s),
		new.NewCmdNew(s),
		write.NewCmdWrite(s),
		edit.NewCmdEdit(s),
		rename.NewCmdRename(s),
		remove.NewCmdRemove(s),
		tags.NewCmdTags(s),
		screenshot.NewCmdScreenshot(s),
		export.NewCmdExport(s),
		configcmd.NewCmdConfig(s),
		backup.NewCmdBackup(s),
		pick.NewCmdPick(s),
	)

	return cmd
}

// setup builds the logger and opens the note store once flags are parsed.
// A state that is already loaded is kept.
func setup(cmd *cobra.Command, s *state.State, opts options, fullscreen bool) error {
	logFile := opts.logFile
	if logFile == "" && fullscreen {
		var err error
		if logFile, err = defaultLogFile(); err != nil {
			return err
		}
	}

	logger, err := newLogger(opts.verbose, logFile)
	if err != nil {
		return err
	}

	if s.Loaded() {
		if s.Logger == nil {
			s.Logger = logger
		}
		return nil
	}

	if err := s.Load(opts.configPath, logger); err != nil {
		return err
	}
	logger.Debug("opened note store",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", s.ConfigPath),
		zap.String("base_path", s.Persistence.BasePath()),
		zap.Int("persistence_version", s.Persistence.Version()),
		zap.Int("notes", s.Notes.Len()),
	)
	return nil
}

func newLogger(verbose bool, logFile string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// defaultLogFile keeps the terminal UI free of log output. The file lives
// outside the base path so the note watcher does not see it.
func defaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate cache directory: %w", err)
	}
	dir = filepath.Join(dir, constants.AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogFile), nil
}
