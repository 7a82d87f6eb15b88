package handlers

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/relaybot/internal/registry"
)

// Invocation describes who ran a command and where.
type Invocation struct {
	GuildID   string
	ChannelID string
	UserID    string
}

// Command is an administrative command available both as a slash command
// and behind the text prefix.
type Command struct {
	Name        string
	Description string
	// FailureText prefixes the error when Run fails.
	FailureText string
	Run         func(ctx context.Context, inv Invocation) (string, error)
}

// Execute runs the command and returns the reply text. Failures are turned
// into reply text rather than returned.
func (c Command) Execute(ctx context.Context, deps HandlerDeps, inv Invocation) string {
	log := deps.Logger.With("command", c.Name, "guild_id", inv.GuildID, "channel_id", inv.ChannelID, "user_id", inv.UserID)

	if inv.GuildID == "" {
		log.InfoContext(ctx, "Command used outside a guild")
		return deps.Config.Messages.GuildOnly
	}

	reply, err := c.Run(ctx, inv)
	if err != nil {
		log.ErrorContext(ctx, "Command failed", "error", err)
		return fmt.Sprintf("%s: %v", c.FailureText, err)
	}

	log.InfoContext(ctx, "Command completed")
	return reply
}

// ApplicationCommand returns the slash command definition. Only members
// who can manage channels see it by default.
func (c Command) ApplicationCommand() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageChannels)
	dmPerm := false
	return &discordgo.ApplicationCommand{
		Name:                     c.Name,
		Description:              c.Description,
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &perms,
		DMPermission:             &dmPerm,
	}
}

// Commands indexes commands by name.
type Commands map[string]Command

// ApplicationCommands returns the slash command definitions sorted by name.
func (c Commands) ApplicationCommands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(c))
	for _, name := range slices.Sorted(maps.Keys(c)) {
		out = append(out, c[name].ApplicationCommand())
	}
	return out
}

// RegisterAllCommands returns every command the bot serves.
func RegisterAllCommands(deps HandlerDeps) Commands {
	cmds := Commands{}

	cmds["setup"] = Command{
		Name:        "setup",
		Description: "Set up the channel for bot responses",
		FailureText: deps.Config.Messages.SetupFailed,
		Run: func(_ context.Context, inv Invocation) (string, error) {
			id, err := strconv.ParseInt(inv.ChannelID, 10, 64)
			if err != nil {
				return "", fmt.Errorf("invalid channel id %q: %w", inv.ChannelID, err)
			}
			if err := deps.Registry.Set(inv.GuildID, registry.ChannelID(id)); err != nil {
				return "", err
			}
			return deps.Config.Messages.SetupDone, nil
		},
	}

	cmds["remove"] = Command{
		Name:        "remove",
		Description: "Remove the channel from bot responses",
		FailureText: deps.Config.Messages.RemoveFailed,
		Run: func(_ context.Context, inv Invocation) (string, error) {
			if err := deps.Registry.Remove(inv.GuildID); err != nil {
				return "", err
			}
			return deps.Config.Messages.RemoveDone, nil
		},
	}

	deps.Logger.Info("Registered commands", "count", len(cmds))
	return cmds
}
