package commands

import (
	"context"
	"fmt"
	"os"

	"rostersync/lib/configutil"
	configlibsql "rostersync/lib/configutil/libsql"
	"rostersync/lib/serviceutil"
	"rostersync/lib/telemetry"

	"github.com/spf13/cobra"
)

type APIConfig struct {
	BaseUrl  string `json:"base_url"`
	ApiKey   string `json:"api_key"`
	PageSize int    `json:"page_size"`
}

type OutputConfig struct {
	Dir      string `json:"dir"`
	Basename string `json:"basename"`
}

type Config struct {
	API      APIConfig           `json:"api"`
	Output   OutputConfig        `json:"output"`
	Database configlibsql.Struct `json:"database"`
}

// readConfig tolerates a missing config.json5, the tool runs on
// defaults plus the environment.
func readConfig() Config {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	return config
}

// resolveAPIKey prefers the environment over the config file.
func resolveAPIKey(config Config) string {
	key := os.Getenv("CONGRESS_GOV_API_KEY")
	if key != "" {
		return key
	}
	return config.API.ApiKey
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rostersync",
	Short: "rostersync keeps dated snapshots of the congressional member roster.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
