package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "Timed mock exam trainer",
	Long: "examprep runs full-length multiple-choice mock exams with a countdown, " +
		"scores them per block and keeps a history of recent sittings.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or DSN (overrides EXAMPREP_DB env var)")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver: sqlite or postgres (overrides EXAMPREP_DB_DRIVER)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank JSON file (overrides EXAMPREP_BANK; default built-in sample)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB.DSN = v
	}
	if v, _ := cmd.Flags().GetString("db-driver"); v != "" {
		cfg.DB.Driver = v
	}
	if v, _ := cmd.Flags().GetString("bank"); v != "" {
		cfg.BankPath = v
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDSN returns the DSN to open: an explicit value wins, then the
// default XDG path for sqlite.
func resolveDSN(cfg config.Config) (string, error) {
	if store.Driver(cfg.DB.Driver) == store.DriverPostgres {
		return cfg.DB.DSN, nil
	}
	if cfg.DB.DSN != "" {
		return cfg.DB.DSN, store.EnsureDir(cfg.DB.DSN)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured history store.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(ctx, store.Driver(cfg.DB.Driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openBook loads the bounded history from st.
func openBook(ctx context.Context, st *store.Store, cfg config.Config) (*history.Book, error) {
	return history.Load(ctx, st.ResultRepo(), cfg.Exam.HistoryLimit)
}

// loadBank reads the configured bank, or the built-in sample.
func loadBank(cfg config.Config) (*bank.Bank, error) {
	if cfg.BankPath == "" {
		return bank.Sample(), nil
	}
	return bank.Load(cfg.BankPath)
}
