package discord_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/relaybot/internal/config"
	"github.com/edgard/relaybot/internal/discord"
)

func TestParseIntents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		names   []string
		want    discordgo.Intent
		wantErr bool
	}{
		{
			name:  "default set",
			names: []string{"guilds", "guild_messages", "direct_messages", "message_content"},
			want: discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
				discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent,
		},
		{name: "case and spaces", names: []string{" Guild_Messages "}, want: discordgo.IntentsGuildMessages},
		{name: "all", names: []string{"all"}, want: discordgo.IntentsAll},
		{name: "duplicates", names: []string{"guilds", "guilds"}, want: discordgo.IntentsGuilds},
		{name: "empty", names: nil, want: 0},
		{name: "unknown", names: []string{"guilds", "voice"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discord.ParseIntents(tt.names)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		DiscordToken: "Bot abcdefghijklmnop",
		Logger:       config.LoggerConfig{Level: "debug"},
		Discord:      config.DiscordConfig{Intents: []string{"guilds", "message_content"}},
	}

	s, err := discord.NewSession(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, err)
	assert.Equal(t, "Bot abcdefghijklmnop", s.Token)
	assert.Equal(t, discordgo.IntentsGuilds|discordgo.IntentsMessageContent, s.Identify.Intents)
	assert.Equal(t, discordgo.LogDebug, s.LogLevel)
	assert.False(t, s.SyncEvents)
}

func TestNewSessionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "empty token", cfg: &config.Config{DiscordToken: "  "}},
		{name: "bad intent", cfg: &config.Config{DiscordToken: "token", Discord: config.DiscordConfig{Intents: []string{"voice"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discord.NewSession(tt.cfg, nil)
			assert.Error(t, err)
		})
	}
}
