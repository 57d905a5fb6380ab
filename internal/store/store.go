package store

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"onchainpoker/player/internal/player"
)

const Codespace = "store"

var (
	ErrNotFound       = errorsmod.Register(Codespace, 1, "player not found")
	ErrInvalidID      = errorsmod.Register(Codespace, 2, "invalid player id")
	ErrUnknownBackend = errorsmod.Register(Codespace, 3, "unknown store backend")
)

// Backends accepted by Open.
const (
	BackendMemDB     = "memdb"
	BackendGoLevelDB = "goleveldb"
	BackendRedis     = "redis"
)

// Store persists full player state, secrets included. Only the owner's
// machine should ever hold one.
type Store interface {
	Get(ctx context.Context, id string) (player.State, error)
	Put(ctx context.Context, st player.State) error
	Delete(ctx context.Context, id string) error
	// List returns stored ids in ascending order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

type Options struct {
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Open selects a backend by name.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemDB, BackendGoLevelDB:
		return OpenKV(opts.Backend, opts.Dir)
	case BackendRedis:
		return DialRedis(ctx, opts.RedisAddr, opts.RedisDB, opts.KeyPrefix)
	default:
		return nil, ErrUnknownBackend.Wrapf("%q", opts.Backend)
	}
}

func encodeState(st player.State) ([]byte, error) {
	if st.ID == "" {
		return nil, ErrInvalidID.Wrap("empty id")
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode player %q: %w", st.ID, err)
	}
	return b, nil
}

func decodeState(id string, b []byte) (player.State, error) {
	var st player.State
	if err := json.Unmarshal(b, &st); err != nil {
		return player.State{}, fmt.Errorf("decode player %q: %w", id, err)
	}
	return st, nil
}
