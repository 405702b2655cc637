package localguide

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "localguide",
	Short: "LocalGuide - an A2A-hosted local attractions agent",
	Long:  "LocalGuide hosts an LLM-backed travel agent over the A2A protocol: agent-card discovery, a JSON-RPC 2.0 endpoint, and terminal task results for every message.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.localguide/localguide.toml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(auditCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of LocalGuide",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("localguide v%s\n", version)
	},
}
