package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	"rostersync/lib/congress"
	"rostersync/lib/roster"
	"rostersync/lib/rosterstore"
	rosterstoredb "rostersync/lib/rosterstore/db"
	"rostersync/lib/serviceutil"
	"rostersync/lib/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches the current roster and writes the dated and latest snapshots.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()

		client, err := congress.NewClient(congress.ClientOptions{
			BaseURL:  config.API.BaseUrl,
			APIKey:   resolveAPIKey(config),
			PageSize: config.API.PageSize,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize congress client", err)
		}

		raws, err := client.ListAllMembers(ctx)
		if err != nil {
			// a failed fetch is narrated, not propagated: the process
			// still exits cleanly so a scheduler retries next cycle
			slog.ErrorContext(ctx, "failed to fetch data", "err", err)
			return
		}

		members := roster.NormalizeAll(ctx, raws)
		now := time.Now()

		result, err := snapshot.Write(ctx, snapshot.WriteOptions{
			Dir:      config.Output.Dir,
			Basename: config.Output.Basename,
			Date:     now,
		}, members)
		if errors.Is(err, snapshot.ErrNoData) {
			slog.InfoContext(ctx, "no data to process")
			return
		}
		if err != nil {
			serviceutil.Fatal("failed to write snapshot", err)
		}
		for _, path := range result.Paths() {
			slog.InfoContext(ctx, "wrote snapshot file", "path", path)
		}

		recordRun(ctx, config, now, members)

		printSummary(members)
	},
}

// recordRun appends the run to the history database when one is
// configured. The snapshot files are already on disk, so a recording
// failure only warns.
func recordRun(ctx context.Context, config Config, now time.Time, members []roster.Member) {
	if !config.Database.Enabled() {
		return
	}

	database, err := config.Database.OpenDB(rosterstoredb.Schema)
	if err != nil {
		slog.WarnContext(ctx, "failed to open roster database", "err", err)
		return
	}
	defer database.Close()

	store := rosterstore.NewStore(database)
	err = store.RecordRun(ctx, rosterstore.RunRecord{
		Date:      now.Format("2006-01-02"),
		FetchedAt: now,
		Members:   members,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record run history", "err", err)
		return
	}
	slog.InfoContext(ctx, "recorded run history", "members", len(members))
}

func printSummary(members []roster.Member) {
	senators := 0
	inOffice := 0
	parties := map[string]int{}
	for _, member := range members {
		if member.IsSenator() {
			senators++
		}
		if member.InOffice {
			inOffice++
		}
		party := member.Party
		if party == "" {
			party = "Unknown"
		}
		parties[party]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Roster", "Count"})
	t.AppendRows([]table.Row{
		{"Members", len(members)},
		{"Senators", senators},
		{"Representatives", len(members) - senators},
		{"In office", inOffice},
	})
	t.AppendSeparator()

	names := make([]string, 0, len(parties))
	for name := range parties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AppendRow(table.Row{name, parties[name]})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
