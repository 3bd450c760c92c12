package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI wires the Cobra command tree to a Viper instance so every flag can also
// be set from the environment or a config file
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
}

// NewCLI builds the command tree
func NewCLI() *CLI {
	cli := &CLI{viperInst: viper.New()}
	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	// SECTIONSTORE_CONFIG points at a custom config file; otherwise discovery
	// walks the usual locations
	if configFile := os.Getenv("SECTIONSTORE_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("sectionstore")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.sectionstore")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("SECTIONSTORE")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Read config file if it exists (ignore errors)
	_ = cli.viperInst.ReadInConfig()
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "sectionstore",
		Short: "Replay and inspect sectioned-collection mutation scripts",
		Long: `sectionstore replays YAML mutation scripts against an in-memory
sectioned collection and prints the resulting layout and change events.

Scripts declare an initial set of sections and an ordered list of
operations (append-items, move-item-before, delete-sections, ...). Replaying
one shows exactly which change notifications each operation emits, which is
useful when debugging how a host list view should animate a batch.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (SECTIONSTORE_*)
3. Configuration files (SECTIONSTORE_CONFIG, ./sectionstore.yaml,
   ~/.sectionstore/sectionstore.yaml)

Examples:
  sectionstore validate contacts.yaml
  sectionstore replay contacts.yaml
  sectionstore replay --format json contacts.yaml`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = cli.viperInst.BindPFlags(cmd.Flags())
			return initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
			)
		},
	}

	flags := cli.rootCmd.PersistentFlags()
	flags.StringP("format", "f", "text", "Output format (text|json|yaml)")
	flags.BoolP("quiet", "q", false, "Suppress event output, print only the final layout")
	flags.BoolP("verbose", "v", false, "Also log to stderr")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")

	for _, flag := range []string{"format", "quiet", "verbose", "log-level"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(cli.newReplayCommand())
	cli.rootCmd.AddCommand(cli.newValidateCommand())
}

// Execute runs the CLI
func (cli *CLI) Execute() error {
	cli.rootCmd.SilenceErrors = true
	cli.rootCmd.SilenceUsage = true
	return cli.rootCmd.Execute()
}
