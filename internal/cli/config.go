package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailpluck/pluck-cli/internal/cliutil"
	"github.com/mailpluck/pluck-cli/internal/clipboard"
	"github.com/mailpluck/pluck-cli/internal/config"
	"github.com/mailpluck/pluck-cli/internal/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the extraction endpoint and clipboard",
	Long: `Manage pluck configuration.

Running 'pluck config' without subcommands starts interactive configuration.

Examples:
  pluck config                            # Interactive configuration
  pluck config show                       # Show effective configuration
  pluck config set endpoint <url>         # Use another extraction service
  pluck config set clipboard osc52        # Copy through the terminal (SSH)`,
	Args: cobra.NoArgs,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  endpoint        - Extraction service URL
  timeout         - Request timeout, e.g. 10s
  clipboard       - auto, system, osc52 or none
  default_output  - pretty or json
  rate_limit      - Max requests per second, 0 for unlimited
  concurrency     - Pages 'pluck extract' fetches at once
  log_level       - debug, info, warn or error
  log_file        - Log file for the interactive UI

Examples:
  pluck config set endpoint https://extractor.internal/extract-emails
  pluck config set timeout 30s`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// prompt asks for a value, returning def on empty input.
func prompt(r *bufio.Reader, w io.Writer, label, def string) string {
	fmt.Fprintf(w, "%s [%s]: ", label, def)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	// Load existing config if present
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	endpoint := prompt(reader, out, "Extraction endpoint", config.Get(config.KeyEndpoint))
	if err := cfg.Set(config.KeyEndpoint, endpoint); err != nil {
		return err
	}

	backend := prompt(reader, out, "Clipboard ("+strings.Join(clipboard.Backends, ", ")+")", config.Get(config.KeyClipboard))
	if err := cfg.Set(config.KeyClipboard, backend); err != nil {
		return err
	}

	configPath, err := saveConfigFile(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nConfig saved to %s\n", configPath)
	return nil
}

// configFilePath returns --config if given, else the default config path.
func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	path, err := config.Path()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, nil
}

func loadConfigFile() (*config.Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func saveConfigFile(cfg *config.Config) (string, error) {
	if cfgFile == "" {
		if err := config.Save(cfg); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}
		return config.Path()
	}
	if err := config.SaveFile(cfgFile, cfg); err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	return cfgFile, nil
}

// configSource reports where the effective value of key comes from.
func configSource(cfg *config.Config, key string) string {
	if os.Getenv(config.EnvVar(key)) != "" {
		return "env"
	}
	if cfg.Value(key) != "" {
		return "file"
	}
	return "default"
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, err := configFilePath()
	if err != nil {
		return err
	}
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// JSON output
	if cliutil.GetOutput(cmd) == "json" {
		values := make(map[string]interface{}, len(config.Keys))
		for _, key := range config.Keys {
			values[key] = map[string]string{
				"value":  config.Get(key),
				"source": configSource(cfg, key),
			}
		}
		return cliutil.OutputJSON(out, map[string]interface{}{
			"configFile": configPath,
			"values":     values,
		})
	}

	// Pretty output
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)
	for _, key := range config.Keys {
		fmt.Fprintf(out, "%s %s %s\n",
			styles.LabelStyle.Render(key+":"),
			config.Get(key),
			styles.HelpStyle.Render("("+configSource(cfg, key)+")"))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Load existing config
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if _, err := saveConfigFile(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s successfully\n", key)
	return nil
}
