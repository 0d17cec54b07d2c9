package commands

import (
	"fmt"

	"tick-mcp/internal/config"
	"tick-mcp/internal/logging"
	tickmcp "tick-mcp/internal/mcp"
	"tick-mcp/internal/tick"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	tickClient tick.Client
)

var rootCmd = &cobra.Command{
	Use:   "tick-mcp",
	Short: "tick-mcp is an MCP server for the Tick time tracking API",
	Long: `An MCP server that exposes Tick time tracking (tickspot.com) as tools:
listing projects, tasks and clients, logging and editing time entries,
and summarizing hours per period and per team member.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "tick": {
        "command": "tick-mcp",
        "env": {
          "TICK_API_TOKEN": "...",
          "TICK_SUBDOMAIN": "..."
        }
      }
    }
  }`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		tickClient = tick.NewClient(cfg.Tick)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("subdomain", cfg.Tick.Subdomain).
			Msg("tick-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP server starting on stdio")
		server := tickmcp.NewServer(Version, cfg, tickClient)
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the account's Tickspot workspace in a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := fmt.Sprintf("https://%s.tickspot.com", cfg.Tick.Subdomain)
		log.Info().Str("url", url).Msg("Opening Tickspot workspace")
		return browser.OpenURL(url)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(openCmd)
}
