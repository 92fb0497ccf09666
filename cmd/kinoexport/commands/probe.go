package commands

import (
	"errors"
	"log/slog"
	"os"

	"kinoexport/lib/scrapers/kinopoisk/votes"
	"kinoexport/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Fetches the first ratings page and prints what a full export would cover, a quick session sanity check.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := createClient(cmd, cfg)

		body, err := client.VotesPage(cmd.Context(), 1)
		if err != nil {
			serviceutil.Fatal("failed to fetch the first ratings page", err)
		}

		items, err := votes.ParseVotes(cmd.Context(), body)
		if err != nil {
			serviceutil.Fatal("failed to parse the first ratings page", err)
		}

		total, err := votes.TotalRatings(cmd.Context(), body)
		if err != nil && !errors.Is(err, votes.ErrTotalUnavailable) {
			serviceutil.Fatal("failed to probe the total ratings counter", err)
		}
		if errors.Is(err, votes.ErrTotalUnavailable) {
			slog.Warn("total ratings counter not found, the listing may have a single page")
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"user", "total ratings", "pages", "items on page 1"})
		t.AppendRow(table.Row{cfg.UserId, total, votes.PageCount(total), len(items)})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
