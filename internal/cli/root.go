package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mailpluck/pluck-cli/internal/cliutil"
	"github.com/mailpluck/pluck-cli/internal/config"
	"github.com/mailpluck/pluck-cli/internal/logging"
	"github.com/mailpluck/pluck-cli/internal/tui/extract"
	"github.com/mailpluck/pluck-cli/internal/workflow"
)

var cfgFile string

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pluck [url]",
	Short: "pluck - Extract email addresses from web pages",
	Long: `pluck finds the email addresses published on a web page.

The page is fetched and scanned by the extraction service; pluck shows the
addresses it finds and copies them to your clipboard.

Running 'pluck' with no subcommand opens the interactive extractor.
Use 'pluck extract' for scripts and batches.

Examples:
  pluck                                   # Interactive extractor
  pluck https://example.com/contact       # Open and extract right away
  pluck extract https://example.com -o json`,
	Args:         cobra.MaximumNArgs(1),
	Version:      Version,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Assigned here rather than in the literal: setupLogging refers to rootCmd.
	rootCmd.PersistentPreRunE = setupLogging

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/pluck/config.yaml)")

	// Global output format flag
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: pretty, json")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

func initConfig() {
	var configPath string
	if cfgFile != "" {
		configPath = cfgFile
	} else {
		dir, err := config.Dir()
		if err != nil {
			return
		}
		configPath = filepath.Join(dir, "config.yaml")
	}
	if err := config.LoadFromFile(configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}

// setupLogging sends logs to stderr for every command except the
// interactive root, which logs to a file so the screen stays clean.
func setupLogging(cmd *cobra.Command, args []string) error {
	if cmd == rootCmd {
		return nil
	}
	_, err := logging.Setup(logging.Options{
		Level:   zerolog.WarnLevel.String(),
		Verbose: verbose,
		Writer:  cmd.ErrOrStderr(),
		Console: true,
	})
	return err
}

func userAgent() string {
	return "pluck/" + Version
}

func runRoot(cmd *cobra.Command, args []string) error {
	logPath, err := config.GetLogFile()
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := logging.Setup(logging.Options{
		Level:   config.GetLogLevel(),
		Verbose: verbose,
		Writer:  logFile,
	})
	if err != nil {
		return err
	}

	ex, err := config.NewExtractor(logger, userAgent())
	if err != nil {
		return err
	}
	// OSC 52 goes to stderr so it never interleaves with the renderer on stdout
	cb, err := config.NewClipboard(os.Stderr)
	if err != nil {
		return err
	}

	ctrl := workflow.New(ex, cb,
		workflow.WithLogger(logger),
		workflow.WithContext(cmd.Context()),
	)
	defer ctrl.Close()

	model := extract.NewModel(ctrl, cliutil.GetArg(args, 0, ""))
	logger.Info().Str("endpoint", ex.Endpoint()).Msg("starting interactive session")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
