// Package tasks implements the bot's scheduled tasks. It includes task
// definitions, their dependencies, and registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/relaybot/internal/bot/handlers"
	"github.com/edgard/relaybot/internal/config"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Session handlers.Session
}
