package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"onchainpoker/player/internal/player"
	"onchainpoker/player/internal/store"
)

type Config struct {
	Home     string        `mapstructure:"home"`
	DeckSize int           `mapstructure:"deck_size"`
	Store    store.Options `mapstructure:"store"`
	Log      LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // zerolog level name
	Format string `mapstructure:"format"` // "plain" | "json"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("home", DefaultHome)
	v.SetDefault("deck_size", player.DefaultDeckSize)
	v.SetDefault("store.backend", store.BackendGoLevelDB)
	v.SetDefault("store.dir", "")
	v.SetDefault("store.redis_addr", "127.0.0.1:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.key_prefix", "ocp:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "plain")
}

// Load resolves configuration from defaults, <home>/config.toml, OCPP_*
// environment variables and any flags already bound to v, in increasing
// precedence.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(v.GetString("home"), ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = filepath.Join(cfg.Home, "data")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DeckSize <= 0 || c.DeckSize > player.DefaultDeckSize {
		return fmt.Errorf("deck_size must be in 1..%d, got %d", player.DefaultDeckSize, c.DeckSize)
	}
	switch c.Store.Backend {
	case store.BackendMemDB, store.BackendGoLevelDB, store.BackendRedis:
	default:
		return fmt.Errorf("store.backend must be one of %s|%s|%s, got %q",
			store.BackendMemDB, store.BackendGoLevelDB, store.BackendRedis, c.Store.Backend)
	}
	if c.Store.Backend == store.BackendRedis && c.Store.RedisAddr == "" {
		return fmt.Errorf("store.redis_addr is required for the redis backend")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "plain" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be plain|json, got %q", c.Log.Format)
	}
	return nil
}

// PlayerConfig is the player configuration for this deck size with the
// default commitment hash and randomness.
func (c Config) PlayerConfig() player.Config {
	cfg := player.DefaultConfig()
	cfg.DeckSize = c.DeckSize
	return cfg
}

// NewLogger builds the process logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	opts := []log.Option{log.LevelOption(lvl)}
	if c.Format == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
