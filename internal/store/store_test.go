package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"onchainpoker/player/internal/cards"
	"onchainpoker/player/internal/ocpcrypto"
	"onchainpoker/player/internal/player"
)

type StoreTestSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
	ctx      context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestKVStoreTestSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func() Store {
		return NewKV(dbm.NewMemDB())
	}})
}

func TestRedisStoreTestSuite(t *testing.T) {
	ts := &StoreTestSuite{}
	ts.newStore = func() Store {
		mr := miniredis.RunT(ts.T())
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		st, err := NewRedis(context.Background(), client, "test:")
		ts.Require().NoError(err)
		return st
	}
	suite.Run(t, ts)
}

func (s *StoreTestSuite) samplePlayer(id string) *player.Player {
	src, err := ocpcrypto.NewDeterministicSource([]byte(id))
	s.Require().NoError(err)
	p := player.New(player.Config{DeckSize: 4, Source: src}, player.State{ID: id})
	_, err = p.GenerateSecrets()
	s.Require().NoError(err)
	_, err = p.GeneratePoints()
	s.Require().NoError(err)
	s.Require().NoError(p.AddBet(player.Bet{Kind: player.BetRaise, Amount: 30}))
	s.Require().NoError(p.AddCards(cards.Card(3), cards.Card(40)))
	return p
}

func (s *StoreTestSuite) TestPutAndGet() {
	p := s.samplePlayer("alice")
	s.Require().NoError(s.store.Put(s.ctx, p.State()))

	st, err := s.store.Get(s.ctx, "alice")
	s.Require().NoError(err)

	got := player.New(player.Config{DeckSize: 4}, st)
	s.Equal("alice", got.ID())
	s.Equal(p.SecretHashes(), got.SecretHashes())
	s.Equal(p.Bets(), got.Bets())
	s.Equal(p.CardsInHand(), got.CardsInHand())
	s.Equal(5, got.RevealedCount())
	s.Require().Len(got.Points(), 4)
	s.True(got.Points()[2].Equal(p.Points()[2]))
	s.NoError(got.Validate())
}

func (s *StoreTestSuite) TestPutOverwrites() {
	p := s.samplePlayer("alice")
	s.Require().NoError(s.store.Put(s.ctx, p.State()))
	s.Require().NoError(p.AddBet(player.Bet{Kind: player.BetFold}))
	s.Require().NoError(s.store.Put(s.ctx, p.State()))

	st, err := s.store.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(player.New(player.Config{DeckSize: 4}, st).HasFolded())
}

func (s *StoreTestSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "nobody")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreTestSuite) TestRejectsEmptyID() {
	s.ErrorIs(s.store.Put(s.ctx, player.State{}), ErrInvalidID)
	_, err := s.store.Get(s.ctx, "")
	s.ErrorIs(err, ErrInvalidID)
	s.ErrorIs(s.store.Delete(s.ctx, ""), ErrInvalidID)
}

func (s *StoreTestSuite) TestListAndDelete() {
	ids, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	for _, id := range []string{"carol", "alice", "bob"} {
		s.Require().NoError(s.store.Put(s.ctx, player.State{ID: id}))
	}
	ids, err = s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob", "carol"}, ids)

	s.Require().NoError(s.store.Delete(s.ctx, "bob"))
	ids, err = s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "carol"}, ids)

	_, err = s.store.Get(s.ctx, "bob")
	s.ErrorIs(err, ErrNotFound)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "paper"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_GoLevelDBPersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, Options{Backend: BackendGoLevelDB, Dir: dir})
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, player.State{ID: "alice", Bets: []player.Bet{{Kind: player.BetCall, Amount: 2}}}))
	require.NoError(t, st.Close())

	st, err = Open(ctx, Options{Backend: BackendGoLevelDB, Dir: dir})
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	got, err := st.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []player.Bet{{Kind: player.BetCall, Amount: 2}}, got.Bets)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	st, err := Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr(), KeyPrefix: "ocp:"})
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	require.NoError(t, st.Put(ctx, player.State{ID: "alice"}))
	require.True(t, mr.Exists("ocp:player:alice"))
	members, err := mr.SMembers("ocp:players")
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, members)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr})
	require.Error(t, err)
}
