package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"onchainpoker/player/internal/player"
)

// Redis stores players as JSON values plus an index set of ids.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client and checks the connection.
func NewRedis(ctx context.Context, client *redis.Client, prefix string) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func DialRedis(ctx context.Context, addr string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	s, err := NewRedis(ctx, client, prefix)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

func (s *Redis) playerKey(id string) string { return s.prefix + "player:" + id }
func (s *Redis) indexKey() string           { return s.prefix + "players" }

func (s *Redis) Get(ctx context.Context, id string) (player.State, error) {
	if id == "" {
		return player.State{}, ErrInvalidID.Wrap("empty id")
	}
	b, err := s.client.Get(ctx, s.playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return player.State{}, ErrNotFound.Wrapf("%q", id)
		}
		return player.State{}, fmt.Errorf("get player %q: %w", id, err)
	}
	return decodeState(id, b)
}

func (s *Redis) Put(ctx context.Context, st player.State) error {
	b, err := encodeState(st)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.playerKey(st.ID), b, 0)
	pipe.SAdd(ctx, s.indexKey(), st.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put player %q: %w", st.ID, err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID.Wrap("empty id")
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.playerKey(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete player %q: %w", id, err)
	}
	return nil
}

func (s *Redis) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Redis) Close() error {
	return s.client.Close()
}
