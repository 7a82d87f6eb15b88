// Package config loads and validates the bot configuration from environment
// variables, an optional JSON config file, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported AI providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config is the full application configuration. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	// Credentials. These sit at the top level of the file so the flat
	// config.json layout ({"discord_token": ..., "gemini_api_key": ...})
	// keeps working, and each one is bound to a plain environment variable.
	DiscordToken string `mapstructure:"discord_token"  validate:"required"`
	ClientID     string `mapstructure:"client_id"`
	AIProvider   string `mapstructure:"ai_provider"    validate:"required,oneof=gemini groq"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=AIProvider gemini"`
	GroqAPIKey   string `mapstructure:"groq_api_key"   validate:"required_if=AIProvider groq"`

	Logger    LoggerConfig    `mapstructure:"logger"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	AI        AIConfig        `mapstructure:"ai"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Groq      GroqConfig      `mapstructure:"groq"`
	Registry  RegistryConfig  `mapstructure:"registry"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DiscordConfig holds gateway and command settings.
type DiscordConfig struct {
	CommandPrefix string   `mapstructure:"command_prefix" validate:"required"`
	Intents       []string `mapstructure:"intents"        validate:"required,min=1,dive,oneof=all all_unprivileged guilds guild_members guild_presences guild_messages guild_message_reactions guild_message_typing direct_messages direct_message_reactions direct_message_typing message_content"`
	Status        string   `mapstructure:"status"`
	GuildID       string   `mapstructure:"guild_id"`
	SyncCommands  bool     `mapstructure:"sync_commands"`
}

// AIConfig holds settings shared by every provider.
type AIConfig struct {
	// Timeout bounds a single completion call. Zero means no deadline.
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	Model string `mapstructure:"model" validate:"required"`
}

// GroqConfig configures the Groq backend, reached through its
// OpenAI-compatible endpoint.
type GroqConfig struct {
	Model   string `mapstructure:"model"    validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// RegistryConfig locates the channel mapping file.
type RegistryConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// MessagesConfig holds user-facing reply texts.
type MessagesConfig struct {
	SetupDone     string `mapstructure:"setup_done"     validate:"required"`
	SetupFailed   string `mapstructure:"setup_failed"   validate:"required"`
	RemoveDone    string `mapstructure:"remove_done"    validate:"required"`
	RemoveFailed  string `mapstructure:"remove_failed"  validate:"required"`
	GuildOnly     string `mapstructure:"guild_only"     validate:"required"`
	NotAuthorized string `mapstructure:"not_authorized" validate:"required"`
	EmptyPrompt   string `mapstructure:"empty_prompt"   validate:"required"`
	ErrorPrefix   string `mapstructure:"error_prefix"`
}

// SchedulerConfig configures background tasks. An empty schedule disables
// the task.
type SchedulerConfig struct {
	PresenceSchedule string `mapstructure:"presence_schedule"`
}

// envBindings maps config keys to the plain environment variables that
// override them.
var envBindings = map[string]string{
	"discord_token":  "DISCORD_TOKEN",
	"client_id":      "DISCORD_CLIENT_ID",
	"ai_provider":    "AI_PROVIDER",
	"gemini_api_key": "GEMINI_API_KEY",
	"groq_api_key":   "GROQ_API_KEY",
}

// EnvPrefix prefixes environment variables for the nested settings, e.g.
// BOT_LOGGER_LEVEL or BOT_REGISTRY_PATH.
const EnvPrefix = "BOT"

// Load builds the configuration from, in decreasing precedence, environment
// variables, the JSON file at path, and defaults. A .env file in the working
// directory is loaded into the environment first when present. A missing
// config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			slog.Info("Config file not found, using environment and defaults", "path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	for i, intent := range cfg.Discord.Intents {
		cfg.Discord.Intents[i] = strings.ToLower(strings.TrimSpace(intent))
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// APIKey returns the key for the configured AI provider.
func (c *Config) APIKey() string {
	if c.AIProvider == ProviderGroq {
		return c.GroqAPIKey
	}
	return c.GeminiAPIKey
}

// Model returns the model name for the configured AI provider.
func (c *Config) Model() string {
	if c.AIProvider == ProviderGroq {
		return c.Groq.Model
	}
	return c.Gemini.Model
}

// LogValue reports the configuration without secrets.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ai_provider", c.AIProvider),
		slog.String("ai_model", c.Model()),
		slog.Bool("client_id_set", c.ClientID != ""),
		slog.String("registry_path", c.Registry.Path),
		slog.String("command_prefix", c.Discord.CommandPrefix),
		slog.Any("intents", c.Discord.Intents),
		slog.String("log_level", c.Logger.Level),
	)
}
