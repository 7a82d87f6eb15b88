package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/relaybot/internal/logger"
	"github.com/edgard/relaybot/internal/text"
)

// MessageHandler relays eligible messages to the AI backend and runs
// prefix commands.
type MessageHandler struct {
	deps     HandlerDeps
	commands Commands
}

// NewMessageHandler creates a handler that answers messages in the guild's
// configured channel or messages that start with a mention of the bot.
func NewMessageHandler(deps HandlerDeps, commands Commands) MessageHandler {
	return MessageHandler{deps: deps, commands: commands}
}

// Handle processes a single MessageCreate event.
func (h MessageHandler) Handle(ctx context.Context, s Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil || m.Author.Bot {
		return
	}

	startTime := time.Now()
	log := h.deps.Logger.With(
		"handler", "message",
		"message_id", m.ID,
		"guild_id", m.GuildID,
		"channel_id", m.ChannelID,
		"user_id", m.Author.ID,
	)

	if prompt, ok := h.prompt(m); ok {
		log.DebugContext(ctx, "Processing message", "text_preview", logger.Truncate(prompt, 50))
		h.respond(ctx, s, m, prompt)
		log.InfoContext(ctx, "Finished processing message", "duration", time.Since(startTime))
	}

	h.runPrefixCommand(ctx, s, m)
}

// prompt decides whether m should be answered and returns the text to send
// to the backend. Messages in the configured channel are forwarded as-is;
// elsewhere the message has to start with a mention of the bot, which is
// stripped.
func (h MessageHandler) prompt(m *discordgo.MessageCreate) (string, bool) {
	if m.GuildID != "" {
		if configured, ok := h.deps.Registry.Lookup(m.GuildID); ok && configured.String() == m.ChannelID {
			return m.Content, true
		}
	}

	botID := h.deps.Identity.ID()
	if HasMentionPrefix(m.Content, botID) {
		return StripMention(m.Content, botID), true
	}
	return "", false
}

func (h MessageHandler) respond(ctx context.Context, s Session, m *discordgo.MessageCreate, prompt string) {
	log := h.deps.Logger.With("handler", "message", "message_id", m.ID, "channel_id", m.ChannelID)

	if strings.TrimSpace(prompt) == "" {
		if HasMentionPrefix(m.Content, h.deps.Identity.ID()) {
			h.reply(ctx, s, m, h.deps.Config.Messages.EmptyPrompt)
		} else {
			log.DebugContext(ctx, "Ignoring message without text")
		}
		return
	}

	stopTyping := startTyping(ctx, s, m.ChannelID, log)
	resp, err := h.deps.AIClient.Complete(ctx, prompt)
	stopTyping()

	if err != nil {
		log.ErrorContext(ctx, "AI completion failed", "error", err)
		resp = h.deps.Config.Messages.ErrorPrefix + err.Error()
	}

	chunks := text.Render(resp, text.MaxMessageLength)
	if len(chunks) > 1 {
		log.DebugContext(ctx, "Splitting response", "chunks", len(chunks), "length", len(resp))
	}
	for _, chunk := range chunks {
		if !h.reply(ctx, s, m, chunk) {
			return
		}
	}
}

func (h MessageHandler) runPrefixCommand(ctx context.Context, s Session, m *discordgo.MessageCreate) {
	prefix := h.deps.Config.Discord.CommandPrefix
	if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}
	cmd, ok := h.commands[strings.ToLower(fields[0])]
	if !ok {
		return
	}

	log := h.deps.Logger.With("handler", "prefix_command", "command", cmd.Name, "channel_id", m.ChannelID, "user_id", m.Author.ID)

	if m.GuildID != "" && !h.canManageChannels(ctx, s, m) {
		log.WarnContext(ctx, "Unauthorized command attempt")
		h.reply(ctx, s, m, h.deps.Config.Messages.NotAuthorized)
		return
	}

	inv := Invocation{GuildID: m.GuildID, ChannelID: m.ChannelID, UserID: m.Author.ID}
	h.reply(ctx, s, m, cmd.Execute(ctx, h.deps, inv))
}

func (h MessageHandler) canManageChannels(ctx context.Context, s Session, m *discordgo.MessageCreate) bool {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		h.deps.Logger.WarnContext(ctx, "Failed to resolve permissions", "error", err, "user_id", m.Author.ID, "channel_id", m.ChannelID)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionManageChannels != 0
}

// reply sends content as a reply to m and reports whether it was delivered.
func (h MessageHandler) reply(ctx context.Context, s Session, m *discordgo.MessageCreate, content string) bool {
	if ctx.Err() != nil {
		h.deps.Logger.WarnContext(ctx, "Context cancelled before sending reply", "error", ctx.Err(), "channel_id", m.ChannelID)
		return false
	}
	sent, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "channel_id", m.ChannelID)
		return false
	}
	if sent != nil {
		h.deps.Logger.DebugContext(ctx, "Sent reply", "channel_id", m.ChannelID, "reply_id", sent.ID)
	}
	return true
}
