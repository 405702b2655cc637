package localguide

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/localguide-ai/localguide/pkg/a2a"
	"github.com/localguide-ai/localguide/pkg/agent"
	"github.com/localguide-ai/localguide/pkg/audit"
	"github.com/localguide-ai/localguide/pkg/config"
	"github.com/localguide-ai/localguide/pkg/gateway"
	"github.com/localguide-ai/localguide/pkg/llm"
	"github.com/localguide-ai/localguide/pkg/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LocalGuide A2A server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logger := telemetry.SetupLogger(cfg.Log.Level, cfg.Log.Format, nil)
	logger.Info("starting localguide",
		slog.String("version", version),
		slog.String("agent", cfg.Agent.Name),
		slog.String("provider", cfg.Agent.Provider),
		slog.Int("port", cfg.Server.Port),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = telemetry.WithLogger(ctx, logger)

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		Enabled:  cfg.Tracing.Enabled,
		Endpoint: cfg.Tracing.Endpoint,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	var auditLog *audit.Logger
	if cfg.Audit.Enabled {
		auditLog, err = audit.Open(cfg.Audit.DSN)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer func() { _ = auditLog.Close() }()
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

	card := a2a.NewAgentCard(cfg.Agent.Name, cfg.Agent.Description, cfg.Server.BaseURL())
	handler := a2a.NewHandler(a2a.HandlerConfig{
		Card:     card,
		Runner:   runtime,
		AuditLog: auditLog,
		Logger:   logger,
	})

	gw := gateway.New(gateway.Config{
		Bind:       cfg.Server.Bind,
		Port:       cfg.Server.Port,
		A2AHandler: handler,
		Logger:     logger,
	})

	return gw.Start(ctx)
}
