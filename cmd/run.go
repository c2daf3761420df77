package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/app"
)

// runApp opens the store, loads the bank and history, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := loadBank(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	book, err := openBook(ctx, st, cfg)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Bank:     b,
		Book:     book,
		Duration: cfg.Exam.Duration,
	})
}
