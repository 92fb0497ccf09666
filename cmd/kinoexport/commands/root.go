package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kinoexport",
	Short: "kinoexport scrapes a kinopoisk user's movie ratings into a CSV file.",
	// a bare invocation runs a full export with default flags
	Run: func(cmd *cobra.Command, args []string) {
		exportCmd.Run(cmd, args)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
