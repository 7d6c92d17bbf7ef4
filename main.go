package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"LumenChat/commands"
	"LumenChat/internal/chatbot"
	"LumenChat/internal/game"
)

var (
	// Global flags
	debug      bool
	rulesDir   string
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lumenchat",
	Short: "LumenChat - telnet server with a rule-based chatbot",
	Long: `LumenChat hosts players over telnet and answers their questions from
a directory of keyword rules. Responses may reference player details and
the current time in many zones through {placeholders}.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the telnet server",
	RunE:  runServe,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the chatbot a question without starting the server",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default rule file and chatbot config when missing",
	RunE:  runSeed,
}

var (
	addr         string
	accountsPath string
	adminAccount string
	askPlayer    string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rulesDir, "chatbot-dir", "data/chatbot", "Directory containing chatbot rule files")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "data/config.yml", "Path to the chatbot configuration file")

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&addr, "addr", ":4000", "TCP address to listen on")
		cmd.Flags().StringVar(&accountsPath, "accounts", "data/accounts.json", "Path to the player accounts database")
		cmd.Flags().StringVar(&adminAccount, "admin", "admin", "Account granted administrator privileges")
	}
	askCmd.Flags().StringVar(&askPlayer, "player", "console", "Player name used for context placeholders")

	rootCmd.AddCommand(serveCmd, askCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// seedDefaults writes the default rules and config on first run. Failures
// are logged and do not stop startup.
func seedDefaults() {
	if created, err := chatbot.SeedRules(rulesDir); err != nil {
		logger.Warn("failed to seed chatbot rules", zap.String("dir", rulesDir), zap.Error(err))
	} else if created {
		logger.Info("seeded chatbot rules", zap.String("dir", rulesDir))
	}
	if created, err := chatbot.SeedConfig(configPath); err != nil {
		logger.Warn("failed to seed chatbot config", zap.String("path", configPath), zap.Error(err))
	} else if created {
		logger.Info("seeded chatbot config", zap.String("path", configPath))
	}
}

// buildBot loads config and rules and returns a ready bot.
func buildBot() (*chatbot.Bot, chatbot.Config) {
	cfg, err := chatbot.LoadConfig(configPath)
	if err != nil {
		logger.Warn("using default chatbot config", zap.String("path", configPath), zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("unknown server timezone, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	rules, _ := chatbot.LoadDir(rulesDir, logger)
	bot := chatbot.New(rules,
		chatbot.WithServerLocation(loc),
		chatbot.WithLogger(logger),
	)
	return bot, cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	seedDefaults()
	bot, cfg := buildBot()
	logger.Info("Starting LumenChat",
		zap.String("addr", addr),
		zap.Int("rules", bot.LoadedRuleCount()),
		zap.String("token_type", cfg.Token.Type))
	return game.ListenAndServe(addr, accountsPath, adminAccount, commands.Dispatch,
		game.WithLogger(logger),
		game.WithChatBot(bot, rulesDir),
		game.WithChatBotConfig(cfg),
	)
}

func runAsk(cmd *cobra.Command, args []string) error {
	bot, _ := buildBot()
	question := strings.Join(args, " ")
	profile := chatbot.Profile{Name: askPlayer}
	replies := bot.Respond(question, profile)
	if len(replies) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "I don't know how to answer that yet.")
		return nil
	}
	for _, reply := range replies {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	created, err := chatbot.SeedRules(rulesDir)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Wrote default rules to %s\n", rulesDir)
	} else {
		fmt.Fprintf(out, "Rules directory %s already exists\n", rulesDir)
	}
	created, err = chatbot.SeedConfig(configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Wrote default config to %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Config %s already exists\n", configPath)
	}
	return nil
}
