package tasks

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Presence builds the "Watching <status>" activity shown under the bot's
// name.
func Presence(status string) discordgo.UpdateStatusData {
	return discordgo.UpdateStatusData{
		Status: string(discordgo.StatusOnline),
		Activities: []*discordgo.Activity{{
			Name: status,
			Type: discordgo.ActivityTypeWatching,
		}},
	}
}

// newPresenceTask re-applies the bot's activity. Discord can drop it after
// a gateway resume.
func newPresenceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", PresenceTask)

	return func(ctx context.Context) error {
		status := deps.Config.Discord.Status
		if err := deps.Session.UpdateStatusComplex(Presence(status)); err != nil {
			return fmt.Errorf("failed to update presence: %w", err)
		}
		log.DebugContext(ctx, "Presence refreshed", "status", status)
		return nil
	}
}
