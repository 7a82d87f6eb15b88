// Package handlers contains the Discord message dispatcher and the
// administrative commands, along with their registration logic.
package handlers

import (
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/relaybot/internal/ai"
	"github.com/edgard/relaybot/internal/config"
	"github.com/edgard/relaybot/internal/registry"
)

// Session is the subset of *discordgo.Session the handlers and the bot
// orchestrator use. *discordgo.Session satisfies it directly.
type Session interface {
	Open() error
	Close() error
	AddHandler(handler any) func()
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

var _ Session = (*discordgo.Session)(nil)

// Identity holds the bot's own user ID, learned from the Ready event.
type Identity struct {
	id atomic.Pointer[string]
}

// Set records the bot user ID.
func (i *Identity) Set(userID string) {
	i.id.Store(&userID)
}

// ID returns the bot user ID, or "" before the session is ready.
func (i *Identity) ID() string {
	if p := i.id.Load(); p != nil {
		return *p
	}
	return ""
}

// HandlerDeps provides dependencies for Discord event handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Registry registry.Registry
	AIClient ai.Client
	Identity *Identity
}
