package snapshot

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rostersync/lib/roster"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRoster(now time.Time) []roster.Member {
	return []roster.Member{
		{
			ID:          "P000197",
			Name:        "Pelosi, Nancy",
			FirstName:   "Nancy",
			LastName:    "Pelosi",
			Party:       "Democratic",
			State:       "California",
			District:    intPtr(11),
			Chamber:     "House of Representatives",
			Title:       roster.TitleRepresentative,
			URL:         "https://api.congress.gov/v3/member/P000197",
			InOffice:    true,
			LastUpdated: now,
		},
		{
			ID:          "S000033",
			Name:        "Sanders, Bernard",
			FirstName:   "Bernard",
			LastName:    "Sanders",
			Party:       "Independent",
			State:       "Vermont",
			Chamber:     "Senate",
			Title:       roster.TitleSenator,
			InOffice:    true,
			LastUpdated: now,
		},
		{
			ID:          "N000188",
			Name:        "Norcross, Donald",
			FirstName:   "Donald",
			LastName:    "Norcross",
			Party:       "Democratic",
			State:       "New Jersey",
			Chamber:     "House of Representatives",
			Title:       roster.TitleRepresentative,
			InOffice:    false,
			LastUpdated: now,
		},
	}
}

func TestWriteEmptyRoster(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	_, err := Write(context.Background(), WriteOptions{Dir: dir}, nil)
	require.ErrorIs(t, err, ErrNoData)

	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestWriteRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	members := sampleRoster(now)
	dir := t.TempDir()

	result, err := Write(context.Background(), WriteOptions{
		Dir:      dir,
		Basename: "congress_members",
		Date:     now,
	}, members)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "congress_members_2025-01-15.json"), result.DatedJSON)
	require.Equal(t, filepath.Join(dir, "congress_members_2025-01-15.csv"), result.DatedCSV)

	jsonData, err := os.ReadFile(result.DatedJSON)
	require.NoError(t, err)

	var decoded []roster.Member
	err = json.Unmarshal(jsonData, &decoded)
	require.NoError(t, err)
	diff := cmp.Diff(members, decoded)
	require.Empty(t, diff)

	latestJSON, err := os.ReadFile(result.LatestJSON)
	require.NoError(t, err)
	require.Equal(t, jsonData, latestJSON)

	csvData, err := os.ReadFile(result.DatedCSV)
	require.NoError(t, err)
	latestCSV, err := os.ReadFile(result.LatestCSV)
	require.NoError(t, err)
	require.Equal(t, csvData, latestCSV)
}

func TestWriteCSVColumns(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	dir := t.TempDir()

	result, err := Write(context.Background(), WriteOptions{Dir: dir, Date: now}, sampleRoster(now))
	require.NoError(t, err)

	file, err := os.Open(result.DatedCSV)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string{
		"id", "name", "firstName", "lastName", "party", "state",
		"district", "chamber", "title", "url", "inOffice", "lastUpdated",
	}, rows[0])

	// representative with a known district
	require.Equal(t, "11", rows[1][6])
	// senators keep an empty cell
	require.Equal(t, "", rows[2][6])
	// a representative without a district stays empty too, never "0"
	require.Equal(t, "", rows[3][6])

	require.Equal(t, "true", rows[1][10])
	require.Equal(t, "false", rows[3][10])
	require.Equal(t, "2025-01-15T10:30:00Z", rows[1][11])
}

func TestWriteSenateOnlyOmitsDistrictColumn(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	members := []roster.Member{
		{
			ID:          "S000033",
			Name:        "Sanders, Bernard",
			Chamber:     "Senate",
			Title:       roster.TitleSenator,
			InOffice:    true,
			LastUpdated: now,
		},
	}

	result, err := Write(context.Background(), WriteOptions{Dir: t.TempDir(), Date: now}, members)
	require.NoError(t, err)

	file, err := os.Open(result.DatedCSV)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{
		"id", "name", "firstName", "lastName", "party", "state",
		"chamber", "title", "url", "inOffice", "lastUpdated",
	}, rows[0])
}

func TestWriteOverwritesPrevious(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	dir := t.TempDir()
	opts := WriteOptions{Dir: dir, Date: now}

	_, err := Write(context.Background(), opts, sampleRoster(now))
	require.NoError(t, err)

	result, err := Write(context.Background(), opts, sampleRoster(now)[:1])
	require.NoError(t, err)

	jsonData, err := os.ReadFile(result.LatestJSON)
	require.NoError(t, err)

	var decoded []roster.Member
	err = json.Unmarshal(jsonData, &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, "P000197", decoded[0].ID)
}

func TestWriteDefaults(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()

	result, err := Write(context.Background(), WriteOptions{Dir: dir}, sampleRoster(now))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "congress_members_latest.json"), result.LatestJSON)
	require.Contains(t, result.DatedJSON, time.Now().Format("2006-01-02"))
}
