// Package logger provides structured logging for the bot. It uses Go's slog
// package with a JSON handler for machine consumption or a colored text
// handler for terminals, and bridges discordgo's own logging into slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger writing to stdout with the given level and
// format, and installs it as the slog default.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	log := slog.New(NewHandler(os.Stdout, ParseLevel(levelStr), jsonOutput))
	slog.SetDefault(log)
	return log
}

// NewHandler returns the handler NewLogger uses, writing to w.
func NewHandler(w io.Writer, level slog.Level, jsonOutput bool) slog.Handler {
	if jsonOutput {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	})
}

var discordgoLevels = map[int]slog.Level{
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogDebug:         slog.LevelDebug,
}

// DiscordgoLevel maps a slog level to the discordgo log level that lets the
// same messages through.
func DiscordgoLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}

// DiscordgoLogger adapts log to the signature of discordgo.Logger.
func DiscordgoLogger(log *slog.Logger) func(msgL, caller int, format string, a ...any) {
	log = log.With("component", "discordgo")
	return func(msgL, _ int, format string, a ...any) {
		level, ok := discordgoLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.Log(context.Background(), level, strings.ReplaceAll(fmt.Sprintf(format, a...), "\n", " "))
	}
}

// Truncate shortens s to at most maxLen bytes for log previews.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
