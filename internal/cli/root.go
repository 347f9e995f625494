// Package cli implements the cosmic-whispers CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/config"
	"github.com/rcliao/cosmic-whispers/internal/logger"
	"github.com/rcliao/cosmic-whispers/internal/oracle"
	"github.com/rcliao/cosmic-whispers/internal/reveal"
	"github.com/rcliao/cosmic-whispers/internal/session"
	"github.com/rcliao/cosmic-whispers/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	logLevel   string
	ephemeral  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "cosmic-whispers",
	Short: "Madame Nebula's astrology tent",
	Long:  "Step into the Dark Carnival: share your birth details and receive a reading, revealed one letter at a time.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $COSMIC_WHISPERS_DB or ~/.cosmic-whispers/history.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $COSMIC_WHISPERS_CONFIG or ~/.cosmic-whispers/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep history in memory only")
}

func newLogger() *slog.Logger {
	return logger.New(os.Stderr, logLevel)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

func openStore(cfg *config.Config, log *slog.Logger) (store.HistoryStore, error) {
	if ephemeral {
		return store.NewMemoryStore(log), nil
	}
	return store.NewSQLiteStore(cfg.DBPath, log)
}

// newController wires a session controller from the loaded configuration.
// The returned cleanup closes the controller and the store.
func newController(opts ...reveal.Option) (*session.Controller, *config.Config, func()) {
	cfg := loadConfig()
	log := newLogger()

	s, err := openStore(cfg, log)
	if err != nil {
		exitErr("open store", err)
	}

	c := session.New(s, oracle.NewMockOracle(cfg.Oracle.Delay),
		session.WithLogger(log),
		session.WithRevealConfig(cfg.Reveal),
		session.WithRevealer(reveal.New(opts...)),
	)
	return c, cfg, func() {
		c.Close()
		s.Close()
	}
}

func textFormat() bool {
	return formatFlag == "text"
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
