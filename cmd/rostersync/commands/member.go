package commands

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rostersync/lib/congress"
	"rostersync/lib/htmlutil"
	"rostersync/lib/roster"
	"rostersync/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(memberCmd)
}

var memberCmd = &cobra.Command{
	Use:   "member <bioguide-id>",
	Short: "Prints the detail record for a single member.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()

		client, err := congress.NewClient(congress.ClientOptions{
			BaseURL: config.API.BaseUrl,
			APIKey:  resolveAPIKey(config),
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize congress client", err)
		}

		raw, err := client.GetMember(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch member", err)
		}
		member := roster.Normalize(ctx, raw, time.Now())

		name := member.Name
		if name == "" {
			name = strings.TrimSpace(member.FirstName + " " + member.LastName)
		}
		district := ""
		if member.District != nil {
			district = strconv.Itoa(*member.District)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Id", member.ID},
			{"Name", name},
			{"Party", member.Party},
			{"State", member.State},
			{"Chamber", member.Chamber},
			{"Title", member.Title},
			{"District", district},
			{"In office", member.InOffice},
			{"Url", member.URL},
		})
		if raw.Depiction != nil {
			t.AppendRow(table.Row{"Portrait", raw.Depiction.ImageURL})
			// attribution arrives as an html fragment
			if credit := htmlutil.StripTags(raw.Depiction.Attribution); credit != "" {
				t.AppendRow(table.Row{"Credit", credit})
			}
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
