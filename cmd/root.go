package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/blackjack/internal/config"
	"github.com/arcanaland/blackjack/internal/logging"
	"github.com/arcanaland/blackjack/internal/slots"
)

var (
	stateFlag    string
	logLevelFlag string
	noColorFlag  bool

	cfg    *config.Config
	logger *log.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "blackjack",
	Short: "Single-player blackjack with three save slots",
	Long: `Blackjack is a terminal blackjack game against a dealer who stands on 17.
Balances are kept in three named save slots that persist between sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("state") {
			cfg.StateFile = stateFlag
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevelFlag
		}
		if noColorFlag {
			cfg.Color = false
		}

		logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&stateFlag, "state", "", "Path to the save slot file (default from config)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	RootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// openStore loads the save slots named by the config
func openStore() (*slots.Store, error) {
	return slots.Load(cfg.StateFile, logger)
}
