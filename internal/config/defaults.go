package config

import (
	_ "embed"
)

//go:embed defaults/pipes.yaml
var defaultPipesYAML []byte

// DefaultConfig returns the hard-coded configuration used when nothing else loads.
func DefaultConfig() Config {
	return Config{
		Levels: LevelsConfig{
			IncludeDB: true,
		},
		Storage: StorageConfig{
			Path: "~/.pipes/pipes.db",
		},
		Progress: ProgressConfig{
			Backend: BackendSQLite,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "pipes:progress:",
			},
		},
		SSH: SSHConfig{
			Host:           "0.0.0.0",
			Port:           2222,
			HostKeyPath:    "~/.pipes/host_key",
			IdleTimeoutMin: 30,
			MaxSessions:    100,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			TickRate:      30,
			ClearBannerMs: 2000,
			Theme:         "classic",
		},
	}
}
