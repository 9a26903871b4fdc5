package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"rostersync/lib/rosterstore"
	rosterstoredb "rostersync/lib/rosterstore/db"
	"rostersync/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [bioguide-id]",
	Short: "Prints recorded runs, or one member's roster history.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()

		if !config.Database.Enabled() {
			serviceutil.Fatal(
				"no database configured",
				errors.New("set database.file or database.url in config.json5"),
			)
		}
		database, err := config.Database.OpenDB(rosterstoredb.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open roster database", err)
		}
		defer database.Close()
		store := rosterstore.NewStore(database)

		if len(args) == 0 {
			printRuns(ctx, store)
			return
		}
		printMemberHistory(ctx, store, args[0])
	},
}

func printRuns(ctx context.Context, store rosterstore.Store) {
	runs, err := store.Runs(ctx)
	if err != nil {
		serviceutil.Fatal("failed to read runs", err)
	}
	if len(runs) == 0 {
		slog.Info("no runs recorded yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Members", "Fetched at"})
	for _, run := range runs {
		t.AppendRow(table.Row{run.Date, run.MemberCount, run.FetchedAt.Format(time.RFC3339)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func printMemberHistory(ctx context.Context, store rosterstore.Store, bioguideID string) {
	history, err := store.MemberHistory(ctx, bioguideID)
	if err != nil {
		serviceutil.Fatal("failed to read member history", err)
	}
	if len(history) == 0 {
		slog.Info("no history recorded for member", "id", bioguideID)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Name", "Party", "State", "Chamber", "Title", "District", "In office"})
	for _, entry := range history {
		district := ""
		if entry.District != nil {
			district = strconv.Itoa(*entry.District)
		}
		t.AppendRow(table.Row{
			entry.RunDate, entry.Name, entry.Party, entry.State,
			entry.Chamber, entry.Title, district, entry.InOffice,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
