package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"kinoexport/lib/configutil"
	"kinoexport/lib/restyutil"
	"kinoexport/lib/scrapers/kinopoisk/core"
	"kinoexport/lib/serviceutil"
	"kinoexport/lib/sqliteutil"
	"kinoexport/services/export"
	"kinoexport/services/export/db"

	"github.com/spf13/cobra"
)

type Config struct {
	UserId       string  `json:"user_id"`
	Cookies      string  `json:"cookies"`
	BaseUrl      string  `json:"base_url"`
	DelaySeconds float64 `json:"delay_seconds"`
}

var exportOut *string
var exportFull *bool
var exportDb *string
var exportSnapshots *string

func init() {
	exportOut = exportCmd.Flags().String("out", "kinopoisk_ratings.csv", "The CSV file to write the export to.")
	exportFull = exportCmd.Flags().Bool("full", false, "Export every extracted column instead of title,year,rating,date.")
	exportDb = exportCmd.Flags().String("db", "", "Additionally mirror the export into a sqlite database at this path.")
	exportSnapshots = exportCmd.Flags().String("snapshots", "", "Dump every fetched page's raw markup into this directory.")
	rootCmd.AddCommand(exportCmd)
}

func loadConfig() Config {
	err := configutil.LoadDotEnv()
	if err != nil {
		serviceutil.Fatal("failed to load .env file", err)
	}

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	cfg.UserId = configutil.EnvOverride("KINOEXPORT_USER_ID", cfg.UserId)
	cfg.Cookies = configutil.EnvOverride("KINOEXPORT_COOKIES", cfg.Cookies)

	if cfg.UserId == "" || cfg.Cookies == "" {
		serviceutil.Fatal("incomplete session credentials", fmt.Errorf(
			"user_id and cookies must be set in config.json5 or through KINOEXPORT_USER_ID/KINOEXPORT_COOKIES"))
	}
	return cfg
}

func createClient(cmd *cobra.Command, cfg Config) *core.Client {
	client, err := core.NewClient(cmd.Context(), core.ClientOptions{
		BaseUrl:    cfg.BaseUrl,
		UserId:     cfg.UserId,
		RawCookies: cfg.Cookies,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize kinopoisk client", err)
	}

	if *exportSnapshots != "" {
		out, err := restyutil.NewFilesystemOutput(*exportSnapshots)
		if err != nil {
			serviceutil.Fatal("failed to set up snapshot directory", err)
		}
		client.SetSnapshotOutput(out)
	}
	return client
}

var exportCmd = &cobra.Command{
	Use:   "export [--out <path/to/output.csv>] [--full] [--db <path/to/output.db>]",
	Short: "Scrapes every page of the user's ratings and writes them to a CSV file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		slog.Info("exporting ratings", "user_id", cfg.UserId)
		client := createClient(cmd, cfg)

		exporter := export.New(client, export.Options{
			Delay: time.Duration(cfg.DelaySeconds * float64(time.Second)),
		})

		t1 := time.Now()
		batch, err := exporter.Run(cmd.Context())
		if err != nil {
			// a partial batch must never end up on disk looking like a
			// complete export
			slog.Error("pagination aborted, discarding partial results", "records", len(batch))
			serviceutil.Fatal("export failed, no CSV written", err)
		}

		err = export.WriteFile(*exportOut, batch, *exportFull)
		if err != nil {
			serviceutil.Fatal("failed to write CSV", err)
		}

		if *exportDb != "" {
			sqlite, err := sqliteutil.OpenDB(db.Schema, *exportDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer sqlite.Close()

			err = export.WriteDB(cmd.Context(), sqlite, batch)
			if err != nil {
				serviceutil.Fatal("failed to mirror export into db", err)
			}
		}

		slog.Info("export complete",
			"records", len(batch),
			"file", *exportOut,
			"seconds", time.Since(t1).Seconds())
	},
}
