package config

import "time"

var defaults = map[string]any{
	"ai_provider": ProviderGemini,

	"logger.level": "info",
	"logger.json":  false,

	"discord.command_prefix": "?",
	"discord.intents":        []string{"guilds", "guild_messages", "direct_messages", "message_content"},
	"discord.status":         "Message",
	"discord.guild_id":       "",
	"discord.sync_commands":  true,

	"ai.timeout": time.Duration(0),

	"gemini.model": "gemini-1.5-flash",

	"groq.model":    "llama-3.3-70b-versatile",
	"groq.base_url": "https://api.groq.com/openai/v1",

	"registry.path": "channel_config.json",

	"messages.setup_done":     "This channel has been set up for bot responses!",
	"messages.setup_failed":   "Error setting up channel",
	"messages.remove_done":    "This channel has been removed from bot responses!",
	"messages.remove_failed":  "Error removing channel",
	"messages.guild_only":     "This command can only be used inside a server.",
	"messages.not_authorized": "You need the Manage Channels permission to use this command.",
	"messages.empty_prompt":   "Please include a message after mentioning me.",
	"messages.error_prefix":   "Error: ",

	"scheduler.presence_schedule": "0 */30 * * * *",
}
