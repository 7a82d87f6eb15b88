// Package bot implements the bot's lifecycle management and component
// orchestration.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/relaybot/internal/bot/handlers"
	"github.com/edgard/relaybot/internal/bot/tasks"
	"github.com/edgard/relaybot/internal/config"
)

// Bot owns the Discord session and the scheduler and wires events to the
// handlers.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	session   handlers.Session
	deps      handlers.HandlerDeps
	commands  handlers.Commands
	scheduler *Scheduler
}

// NewBot creates a bot from its components. The session must not be open
// yet.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	session handlers.Session,
	deps handlers.HandlerDeps,
	commands handlers.Commands,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		session:   session,
		deps:      deps,
		commands:  commands,
		scheduler: scheduler,
	}
}

// Run connects to the gateway and serves events until ctx is cancelled.
// It returns an error if any component fails during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator")

	for _, remove := range b.registerHandlers(ctx) {
		defer remove()
	}

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.logger.Info("Discord session opened")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, closing discord session")
		if err := b.session.Close(); err != nil {
			b.logger.Error("Failed to close discord session", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(gCtx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Failed to stop scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running, waiting for shutdown signal or error")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}

// registerHandlers attaches the event handlers. Each receives ctx, so
// in-flight work is cancelled on shutdown.
func (b *Bot) registerHandlers(ctx context.Context) []func() {
	messages := handlers.NewMessageHandler(b.deps, b.commands)
	interactions := handlers.NewInteractionHandler(b.deps, b.commands)

	return []func(){
		b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			b.onReady(ctx, r)
		}),
		b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
			messages.Handle(ctx, b.session, m)
		}),
		b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
			interactions.Handle(ctx, b.session, i)
		}),
	}
}

func (b *Bot) onReady(ctx context.Context, r *discordgo.Ready) {
	if r == nil || r.User == nil {
		b.logger.WarnContext(ctx, "Ready event without user")
		return
	}
	b.deps.Identity.Set(r.User.ID)
	b.logger.InfoContext(ctx, "Logged in", "user", r.User.Username, "user_id", r.User.ID, "guilds", len(r.Guilds))

	if err := b.session.UpdateStatusComplex(tasks.Presence(b.cfg.Discord.Status)); err != nil {
		b.logger.WarnContext(ctx, "Failed to set presence", "error", err)
	}

	if !b.cfg.Discord.SyncCommands {
		return
	}

	appID := b.cfg.ClientID
	if appID == "" {
		appID = r.User.ID
	}
	synced, err := b.session.ApplicationCommandBulkOverwrite(appID, b.cfg.Discord.GuildID, b.commands.ApplicationCommands())
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to sync slash commands", "error", err, "app_id", appID, "guild_id", b.cfg.Discord.GuildID)
		return
	}
	b.logger.InfoContext(ctx, "Synced slash commands", "count", len(synced), "guild_id", b.cfg.Discord.GuildID)
}
