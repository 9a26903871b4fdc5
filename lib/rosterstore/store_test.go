package rosterstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rostersync/lib/roster"
	"rostersync/lib/rosterstore/db"
	"rostersync/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:rosterstore")
	defer cleanup()

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every pooled connection would otherwise get its own empty
	// in-memory database
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	fetchedAt := time.Date(2025, 1, 14, 6, 0, 0, 0, time.UTC)

	{
		history, err := store.MemberHistory(ctx, "unknown-member")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, history, 0)
	}
	{
		err := store.RecordRun(ctx, RunRecord{
			Date:      "2025-01-14",
			FetchedAt: fetchedAt,
			Members: []roster.Member{
				{
					ID:       "P000197",
					Name:     "Pelosi, Nancy",
					Party:    "Democratic",
					State:    "California",
					Chamber:  "House of Representatives",
					Title:    roster.TitleRepresentative,
					District: intPtr(11),
					InOffice: true,
				},
				{
					ID:       "S000033",
					Name:     "Sanders, Bernard",
					Party:    "Independent",
					State:    "Vermont",
					Chamber:  "Senate",
					Title:    roster.TitleSenator,
					InOffice: true,
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		err = store.RecordRun(ctx, RunRecord{
			Date:      "2025-01-15",
			FetchedAt: fetchedAt.Add(time.Hour * 24),
			Members: []roster.Member{
				{
					ID:       "P000197",
					Name:     "Pelosi, Nancy",
					Party:    "Democratic",
					State:    "California",
					Chamber:  "House of Representatives",
					Title:    roster.TitleRepresentative,
					District: intPtr(12),
					InOffice: true,
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		history, err := store.MemberHistory(ctx, "P000197")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, history, 2)
		require.Equal(t, "2025-01-14", history[0].RunDate)
		require.Equal(t, "2025-01-15", history[1].RunDate)
		require.Equal(t, intPtr(11), history[0].District)
		require.Equal(t, intPtr(12), history[1].District)

		history, err = store.MemberHistory(ctx, "S000033")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, history, 1)
		require.Nil(t, history[0].District)
		require.True(t, history[0].InOffice)
	}
	{
		// recording the same date again replaces that run
		err := store.RecordRun(ctx, RunRecord{
			Date:      "2025-01-15",
			FetchedAt: fetchedAt.Add(time.Hour * 25),
			Members: []roster.Member{
				{
					ID:       "S000033",
					Name:     "Sanders, Bernard",
					Party:    "Independent",
					State:    "Vermont",
					Chamber:  "Senate",
					Title:    roster.TitleSenator,
					InOffice: true,
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		history, err := store.MemberHistory(ctx, "P000197")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, history, 1)
		require.Equal(t, "2025-01-14", history[0].RunDate)

		runs, err := store.Runs(ctx)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, runs, 2)
		require.Equal(t, "2025-01-14", runs[0].Date)
		require.Equal(t, 2, runs[0].MemberCount)
		require.Equal(t, "2025-01-15", runs[1].Date)
		require.Equal(t, 1, runs[1].MemberCount)
		require.Equal(t, fetchedAt.Add(time.Hour*25).Unix(), runs[1].FetchedAt.Unix())
	}
}
