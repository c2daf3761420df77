package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a bank file against the schema and the exam layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: ok, %d variants\n", args[0], len(b.Variants))
		for _, s := range bank.Subjects {
			n := len(b.Pool(s.ID))
			note := ""
			if n == 0 {
				note = "  (no pool, block stays empty)"
			} else if n < 35 {
				note = "  (smaller than a profile block)"
			}
			fmt.Fprintf(out, "  %-22s %3d%s\n", s.Name, n, note)
		}
		return nil
	},
}

var bankDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the built-in sample bank as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(bank.Sample(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode bank: %w", err)
		}
		data = append(data, '\n')

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
		return nil
	},
}

func init() {
	bankDumpCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankDumpCmd)
}
