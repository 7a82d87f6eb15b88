// Package main contains the entrypoint for the Discord relay bot.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edgard/relaybot/internal/ai"
	"github.com/edgard/relaybot/internal/bot"
	"github.com/edgard/relaybot/internal/bot/handlers"
	"github.com/edgard/relaybot/internal/bot/tasks"
	"github.com/edgard/relaybot/internal/config"
	"github.com/edgard/relaybot/internal/discord"
	"github.com/edgard/relaybot/internal/logger"
	"github.com/edgard/relaybot/internal/registry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "relaybot",
		Short:         "Discord bot that relays messages to Gemini or Groq",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to configuration file")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// run initializes all components, runs the bot until ctx is cancelled and
// reports startup or runtime failures.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return err
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Configuration loaded", "config", cfg)

	reg := registry.New(cfg.Registry.Path, log)

	aiClient, err := ai.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize AI client", "provider", cfg.AIProvider, "error", err)
		return err
	}

	session, err := discord.NewSession(cfg, log)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return err
	}

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Registry: reg,
		AIClient: aiClient,
		Identity: &handlers.Identity{},
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		Config:  cfg,
		Session: session,
	}

	sched, err := bot.NewScheduler(log, tasks.Schedules(tDeps), tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return err
	}
	app := bot.NewBot(log, cfg, session, hDeps, handlers.RegisterAllCommands(hDeps), sched)

	log.Info("Starting bot", "version", version)
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return fmt.Errorf("bot stopped: %w", runErr)
	}

	log.Info("Bot stopped gracefully")
	return nil
}
