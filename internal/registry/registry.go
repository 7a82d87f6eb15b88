// Package registry persists which channel the bot answers in for each guild.
//
// The mapping lives in a flat JSON file of the form
//
//	{"channels": {"<guildID>": <channelID>}}
//
// and is re-read on every lookup, so edits made to the file while the bot
// runs are picked up without a restart.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ChannelID is a Discord channel snowflake. It is written as a JSON number
// and read from either a number or a quoted string.
type ChannelID int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChannelID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if strErr := json.Unmarshal(data, &s); strErr != nil {
			return fmt.Errorf("channel id must be a number or numeric string: %w", err)
		}
		n = json.Number(s)
	}
	id, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid channel id %q: %w", n, err)
	}
	*c = ChannelID(id)
	return nil
}

// String returns the decimal form used by the Discord API.
func (c ChannelID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Mapping is the on-disk document.
type Mapping struct {
	Channels map[string]ChannelID `json:"channels"`
}

// Registry reads and mutates the guild to channel mapping.
type Registry interface {
	Load() Mapping
	Lookup(guildID string) (ChannelID, bool)
	Set(guildID string, channelID ChannelID) error
	Remove(guildID string) error
}

// FileRegistry is a Registry backed by a JSON file.
type FileRegistry struct {
	path string
	log  *slog.Logger

	// mu serialises read-modify-write cycles within this process. Writers in
	// other processes are not coordinated; the last rename wins.
	mu sync.Mutex
}

var _ Registry = (*FileRegistry)(nil)

// New returns a FileRegistry for the file at path. The file does not need
// to exist yet.
func New(path string, logger *slog.Logger) *FileRegistry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileRegistry{
		path: path,
		log:  logger.With("component", "registry"),
	}
}

// Path returns the mapping file location.
func (r *FileRegistry) Path() string {
	return r.path
}

// Load reads the mapping file. A missing, unreadable or malformed file
// yields an empty mapping; Load never fails.
func (r *FileRegistry) Load() Mapping {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug("Channel mapping file not found, using empty mapping", "path", r.path)
		} else {
			r.log.Warn("Failed to read channel mapping, using empty mapping", "path", r.path, "error", err)
		}
		return emptyMapping()
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		r.log.Warn("Malformed channel mapping, using empty mapping", "path", r.path, "error", err)
		return emptyMapping()
	}
	if m.Channels == nil {
		m.Channels = map[string]ChannelID{}
	}
	return m
}

// Lookup returns the active channel for guildID, reading the file fresh.
func (r *FileRegistry) Lookup(guildID string) (ChannelID, bool) {
	if guildID == "" {
		return 0, false
	}
	id, ok := r.Load().Channels[guildID]
	return id, ok
}

// Set records channelID as the active channel for guildID, replacing any
// previous entry.
func (r *FileRegistry) Set(guildID string, channelID ChannelID) error {
	return r.save(guildID, &channelID)
}

// Remove clears the entry for guildID. Removing an absent guild succeeds.
func (r *FileRegistry) Remove(guildID string) error {
	return r.save(guildID, nil)
}

func (r *FileRegistry) save(guildID string, channelID *ChannelID) error {
	if guildID == "" {
		return errors.New("guild id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.Load()
	if channelID == nil {
		delete(m.Channels, guildID)
	} else {
		m.Channels[guildID] = *channelID
	}

	if err := r.write(m); err != nil {
		r.log.Error("Failed to write channel mapping", "path", r.path, "guild_id", guildID, "error", err)
		return err
	}

	if channelID == nil {
		r.log.Info("Removed channel mapping", "guild_id", guildID)
	} else {
		r.log.Info("Saved channel mapping", "guild_id", guildID, "channel_id", channelID.String())
	}
	return nil
}

// write replaces the mapping file atomically: the document goes to a temp
// file in the same directory which is then renamed over the target.
func (r *FileRegistry) write(m Mapping) (err error) {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode channel mapping: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

func emptyMapping() Mapping {
	return Mapping{Channels: map[string]ChannelID{}}
}
