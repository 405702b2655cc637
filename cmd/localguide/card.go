package localguide

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localguide-ai/localguide/pkg/a2a"
	"github.com/localguide-ai/localguide/pkg/config"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Print the agent card the server would advertise",
	RunE:  runCard,
}

func runCard(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	card := a2a.NewAgentCard(cfg.Agent.Name, cfg.Agent.Description, cfg.Server.BaseURL())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(card)
}
