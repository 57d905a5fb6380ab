package store

import (
	"context"
	"fmt"

	dbm "github.com/cosmos/cosmos-db"

	"onchainpoker/player/internal/player"
)

var (
	kvPrefix    = []byte("player/")
	kvPrefixEnd = []byte("player0") // '/'+1
)

// KV stores players in a cosmos-db key/value database.
type KV struct {
	db dbm.DB
}

func NewKV(db dbm.DB) *KV {
	return &KV{db: db}
}

// OpenKV opens a "players" database of the given backend under dir.
func OpenKV(backend, dir string) (*KV, error) {
	db, err := dbm.NewDB("players", dbm.BackendType(backend), dir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return NewKV(db), nil
}

func kvKey(id string) []byte {
	return append(append([]byte(nil), kvPrefix...), id...)
}

func (s *KV) Get(_ context.Context, id string) (player.State, error) {
	if id == "" {
		return player.State{}, ErrInvalidID.Wrap("empty id")
	}
	b, err := s.db.Get(kvKey(id))
	if err != nil {
		return player.State{}, fmt.Errorf("get player %q: %w", id, err)
	}
	if b == nil {
		return player.State{}, ErrNotFound.Wrapf("%q", id)
	}
	return decodeState(id, b)
}

func (s *KV) Put(_ context.Context, st player.State) error {
	b, err := encodeState(st)
	if err != nil {
		return err
	}
	if err := s.db.SetSync(kvKey(st.ID), b); err != nil {
		return fmt.Errorf("put player %q: %w", st.ID, err)
	}
	return nil
}

func (s *KV) Delete(_ context.Context, id string) error {
	if id == "" {
		return ErrInvalidID.Wrap("empty id")
	}
	if err := s.db.DeleteSync(kvKey(id)); err != nil {
		return fmt.Errorf("delete player %q: %w", id, err)
	}
	return nil
}

func (s *KV) List(_ context.Context) ([]string, error) {
	it, err := s.db.Iterator(kvPrefix, kvPrefixEnd)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = it.Close() }()

	var ids []string
	for ; it.Valid(); it.Next() {
		ids = append(ids, string(it.Key()[len(kvPrefix):]))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return ids, nil
}

func (s *KV) Close() error {
	return s.db.Close()
}
