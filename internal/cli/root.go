package cli

import (
	"fmt"
	"os"

	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/config"
	"github.com/pair-labs/pair/internal/logging"
	"github.com/pair-labs/pair/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel string
	noColor  bool
)

// logger is rebuilt before every command from --log-level and config.
var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps the rule files of AI coding assistants in sync.

Rules live once in the project's ` + branding.ProjectDir() + ` folder; ` + branding.CLIName() + ` copies them
into each agent's own folder (.cursor, .junie, .copilot) in the layout
that agent expects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := logLevel
		if level == "" {
			level = config.LogLevel()
		}
		if level == "" {
			level = logging.DefaultLevel
		}
		logger = logging.New(nil, level)
		logger.Debug().Str("command", cmd.CommandPath()).Msg("starting")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error or silent (default: config or warn)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// printer returns a ui.Printer bound to the command's output.
func printer(cmd *cobra.Command) *ui.Printer {
	return ui.New(cmd.OutOrStdout(), noColor)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		ui.New(os.Stderr, noColor).Error("%s", err)
		fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", branding.CLIName())
	}
	return err
}
