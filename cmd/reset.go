package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored history of past sittings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to delete history without --yes")
		}

		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.ResultRepo()
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d stored results.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deleting all stored results")
}
