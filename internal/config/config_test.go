package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"onchainpoker/player/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	v := viper.New()
	v.Set("home", home)

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 52, cfg.DeckSize)
	require.Equal(t, store.BackendGoLevelDB, cfg.Store.Backend)
	require.Equal(t, filepath.Join(home, "data"), cfg.Store.Dir)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 52, cfg.PlayerConfig().DeckSize)
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	toml := "deck_size = 20\n\n[store]\nbackend = \"memdb\"\n\n[log]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte(toml), 0o644))
	t.Setenv("OCPP_LOG_LEVEL", "warn")

	v := viper.New()
	v.Set("home", home)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.DeckSize)
	require.Equal(t, store.BackendMemDB, cfg.Store.Backend)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := Config{
		DeckSize: 52,
		Store:    store.Options{Backend: store.BackendMemDB},
		Log:      LogConfig{Level: "info", Format: "plain"},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.DeckSize = 0
	require.Error(t, bad.Validate())

	bad = base
	bad.DeckSize = 53
	require.Error(t, bad.Validate())

	bad = base
	bad.Store.Backend = "sqlite"
	require.Error(t, bad.Validate())

	bad = base
	bad.Store = store.Options{Backend: store.BackendRedis}
	require.Error(t, bad.Validate())

	bad = base
	bad.Log.Level = "loud"
	require.Error(t, bad.Validate())

	bad = base
	bad.Log.Format = "xml"
	require.Error(t, bad.Validate())
}

func TestNewLogger_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	require.Zero(t, buf.Len())

	logger.Warn("shown", "player", "alice")
	require.Contains(t, buf.String(), `"message":"shown"`)
	require.Contains(t, buf.String(), `"player":"alice"`)

	_, err = LogConfig{Level: "loud"}.NewLogger(&buf)
	require.Error(t, err)
}
