// Package config provides YAML-based configuration loading for the pipes game,
// its stores and its servers.
package config

import "time"

// Config is the top-level configuration.
type Config struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Storage  StorageConfig  `yaml:"storage"`
	Progress ProgressConfig `yaml:"progress"`
	SSH      SSHConfig      `yaml:"ssh"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	UI       UIConfig       `yaml:"ui"`
}

// LevelsConfig selects where stages come from.
type LevelsConfig struct {
	Dir         string `yaml:"dir"`          // Extra stage directory; empty = builtin only
	IncludeDB   bool   `yaml:"include_db"`   // Also list stages stored in SQLite
	SkipBuiltin bool   `yaml:"skip_builtin"` // Hide the embedded stages
}

// StorageConfig defines the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Progress backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ProgressConfig selects the cleared-stage tracker.
type ProgressConfig struct {
	Backend string      `yaml:"backend"` // "sqlite", "redis" or "memory"
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	Prefix     string `yaml:"prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"` // 0 = no expiry
}

// TTL returns the configured expiry as a duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// SSHConfig defines the wish server.
type SSHConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
	MaxSessions    int    `yaml:"max_sessions"`
}

// HTTPConfig defines the stage API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// UIConfig tunes the terminal UI.
type UIConfig struct {
	TickRate      int    `yaml:"tick_rate"`       // Frames per second
	ClearBannerMs int    `yaml:"clear_banner_ms"` // How long "Stage Clear!" is shown
	Theme         string `yaml:"theme"`
}

// ClearBanner returns the banner duration.
func (u UIConfig) ClearBanner() time.Duration {
	return time.Duration(u.ClearBannerMs) * time.Millisecond
}
