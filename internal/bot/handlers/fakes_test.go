package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/relaybot/internal/bot/handlers"
	"github.com/edgard/relaybot/internal/config"
	"github.com/edgard/relaybot/internal/registry"
)

const botID = "999"

type sentReply struct {
	ChannelID string
	Content   string
	Reference *discordgo.MessageReference
}

type fakeSession struct {
	mu          sync.Mutex
	replies     []sentReply
	responses   []*discordgo.InteractionResponse
	typing      int
	perms       int64
	permsErr    error
	sendErr     error
	overwritten []*discordgo.ApplicationCommand
	overwriteTo [2]string
	statuses    []discordgo.UpdateStatusData
	handlers    []any
	opened      bool
	closed      bool
}

func (f *fakeSession) Open() error  { f.opened = true; return nil }
func (f *fakeSession) Close() error { f.closed = true; return nil }

func (f *fakeSession) AddHandler(h any) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, h)
	return func() {}
}

func (f *fakeSession) ChannelMessageSendReply(channelID, content string, ref *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.replies = append(f.replies, sentReply{ChannelID: channelID, Content: content, Reference: ref})
	return &discordgo.Message{ID: "sent", ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) ChannelTyping(string, ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing++
	return nil
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overwritten = cmds
	f.overwriteTo = [2]string{appID, guildID}
	return cmds, nil
}

func (f *fakeSession) UpdateStatusComplex(usd discordgo.UpdateStatusData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, usd)
	return nil
}

func (f *fakeSession) UserChannelPermissions(string, string, ...discordgo.RequestOption) (int64, error) {
	return f.perms, f.permsErr
}

func (f *fakeSession) sentContents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.replies))
	for i, r := range f.replies {
		out[i] = r.Content
	}
	return out
}

type fakeAI struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeAI) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// failingRegistry reports write errors while reading as empty.
type failingRegistry struct{}

func (failingRegistry) Load() registry.Mapping {
	return registry.Mapping{Channels: map[string]registry.ChannelID{}}
}
func (failingRegistry) Lookup(string) (registry.ChannelID, bool) { return 0, false }
func (failingRegistry) Set(string, registry.ChannelID) error { return errors.New("disk full") }
func (failingRegistry) Remove(string) error { return errors.New("disk full") }

func testConfig() *config.Config {
	return &config.Config{
		Discord: config.DiscordConfig{CommandPrefix: "?"},
		Messages: config.MessagesConfig{
			SetupDone:     "This channel has been set up for bot responses!",
			SetupFailed:   "Error setting up channel",
			RemoveDone:    "This channel has been removed from bot responses!",
			RemoveFailed:  "Error removing channel",
			GuildOnly:     "guild only",
			NotAuthorized: "not authorized",
			EmptyPrompt:   "empty prompt",
			ErrorPrefix:   "Error: ",
		},
	}
}

func testDeps(t *testing.T, client *fakeAI) (handlers.HandlerDeps, *registry.FileRegistry) {
	t.Helper()
	reg := registry.New(filepath.Join(t.TempDir(), "channel_config.json"), nil)
	identity := &handlers.Identity{}
	identity.Set(botID)
	return handlers.HandlerDeps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:   testConfig(),
		Registry: reg,
		AIClient: client,
		Identity: identity,
	}, reg
}

func message(guildID, channelID, content string, author *discordgo.User) *discordgo.MessageCreate {
	if author == nil {
		author = &discordgo.User{ID: "1", Username: "alice"}
	}
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   content,
		Author:    author,
	}}
}
