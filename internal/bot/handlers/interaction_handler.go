package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler answers slash command invocations.
type InteractionHandler struct {
	deps     HandlerDeps
	commands Commands
}

// NewInteractionHandler creates a handler serving commands.
func NewInteractionHandler(deps HandlerDeps, commands Commands) InteractionHandler {
	return InteractionHandler{deps: deps, commands: commands}
}

// Handle runs the invoked command and replies ephemerally, so only the
// invoker sees the result.
func (h InteractionHandler) Handle(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	log := h.deps.Logger.With("handler", "interaction")

	data := i.ApplicationCommandData()
	cmd, ok := h.commands[data.Name]
	if !ok {
		log.WarnContext(ctx, "Unknown command", "command", data.Name)
		return
	}

	inv := Invocation{GuildID: i.GuildID, ChannelID: i.ChannelID, UserID: interactionUserID(i.Interaction)}
	reply := cmd.Execute(ctx, h.deps, inv)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to respond to interaction", "error", err, "command", data.Name)
	}
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
