package localguide

import (
	"fmt"
	"strings"

	"github.com/localguide-ai/localguide/pkg/agent"
	"github.com/localguide-ai/localguide/pkg/config"
	"github.com/localguide-ai/localguide/pkg/llm"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the agent a single question from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	provider, err := llm.New(llm.Config{
		Provider: cfg.Agent.Provider,
		APIKey:   cfg.Agent.APIKey(),
		BaseURL:  cfg.Agent.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("initializing llm provider: %w", err)
	}

	runtime := agent.NewRuntime(agent.RuntimeConfig{
		Provider:        provider,
		Model:           cfg.Agent.Model,
		SystemPrompt:    cfg.Agent.SystemPrompt,
		MaxOutputTokens: cfg.Agent.MaxOutputTokens,
	})

	res, err := runtime.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(res.Text)
	return nil
}
