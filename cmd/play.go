package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Sit a mock exam in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
