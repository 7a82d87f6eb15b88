// Package discord creates the discordgo session the bot runs on.
package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/relaybot/internal/config"
	"github.com/edgard/relaybot/internal/logger"
)

var intentNames = map[string]discordgo.Intent{
	"all":                      discordgo.IntentsAll,
	"all_unprivileged":         discordgo.IntentsAllWithoutPrivileged,
	"guilds":                   discordgo.IntentsGuilds,
	"guild_members":            discordgo.IntentsGuildMembers,
	"guild_presences":          discordgo.IntentsGuildPresences,
	"guild_messages":           discordgo.IntentsGuildMessages,
	"guild_message_reactions":  discordgo.IntentsGuildMessageReactions,
	"guild_message_typing":     discordgo.IntentsGuildMessageTyping,
	"direct_messages":          discordgo.IntentsDirectMessages,
	"direct_message_reactions": discordgo.IntentsDirectMessageReactions,
	"direct_message_typing":    discordgo.IntentsDirectMessageTyping,
	"message_content":          discordgo.IntentsMessageContent,
}

// ParseIntents combines the named gateway intents.
func ParseIntents(names []string) (discordgo.Intent, error) {
	var intents discordgo.Intent
	for _, name := range names {
		intent, ok := intentNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown gateway intent %q", name)
		}
		intents |= intent
	}
	return intents, nil
}

// NewSession creates an unopened discordgo session for the configured bot
// token. discordgo's own logging is routed through logger.
func NewSession(cfg *config.Config, log *slog.Logger) (*discordgo.Session, error) {
	token := strings.TrimPrefix(strings.TrimSpace(cfg.DiscordToken), "Bot ")
	if token == "" {
		return nil, fmt.Errorf("discord bot token cannot be empty")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "discord_session")

	intents, err := ParseIntents(cfg.Discord.Intents)
	if err != nil {
		return nil, err
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	discordgo.Logger = logger.DiscordgoLogger(log)
	s.LogLevel = logger.DiscordgoLevel(logger.ParseLevel(cfg.Logger.Level))
	s.Identify.Intents = intents
	s.SyncEvents = false
	s.ShouldReconnectOnError = true

	log.Info("Discord session created", "intents", int(intents), "token_prefix", tokenPrefix(token))
	return s, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
