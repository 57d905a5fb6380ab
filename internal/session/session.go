package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"onchainpoker/player/internal/cards"
	"onchainpoker/player/internal/ocpcrypto"
	"onchainpoker/player/internal/player"
	"onchainpoker/player/internal/store"
)

const Codespace = "session"

var (
	ErrPlayerNotFound  = errorsmod.Register(Codespace, 1, "player not in session")
	ErrPlayerExists    = errorsmod.Register(Codespace, 2, "player already in session")
	ErrInvalidSnapshot = errorsmod.Register(Codespace, 3, "invalid player snapshot")
	ErrSecretUnknown   = errorsmod.Register(Codespace, 4, "secret not known")
)

// Session is the single writer for a set of players. Every mutation holds mu
// and is persisted before it returns.
type Session struct {
	mu      sync.Mutex
	cfg     player.Config
	store   store.Store
	logger  log.Logger
	players map[string]*player.Player
}

func New(cfg player.Config, st store.Store, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Session{
		cfg:     cfg,
		store:   st,
		logger:  logger.With("module", "session"),
		players: map[string]*player.Player{},
	}
}

// Load reads every stored player into the session.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		st, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		p := player.New(s.cfg, st)
		if err := p.Validate(); err != nil {
			return fmt.Errorf("load player %q: %w", id, err)
		}
		s.players[id] = p
	}
	s.logger.Debug("loaded players", "count", len(ids))
	return nil
}

func (s *Session) get(id string) (*player.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound.Wrapf("%q", id)
	}
	return p, nil
}

func (s *Session) persist(ctx context.Context, p *player.Player) error {
	if err := s.store.Put(ctx, p.State()); err != nil {
		return fmt.Errorf("persist player %q: %w", p.ID(), err)
	}
	return nil
}

// update applies fn to a copy of player id and installs the copy only once it
// is stored, so a failed write leaves the session as it was.
func (s *Session) update(ctx context.Context, id string, fn func(*player.Player) error) (*player.Player, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	next := p.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.players[id] = next
	return next, nil
}

// CreateLocal adds a player owned by this process with fresh secrets and points.
func (s *Session) CreateLocal(ctx context.Context, id string) (player.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return player.Snapshot{}, ErrInvalidSnapshot.Wrap("empty id")
	}
	if _, ok := s.players[id]; ok {
		return player.Snapshot{}, ErrPlayerExists.Wrapf("%q", id)
	}
	p := player.New(s.cfg, player.State{ID: id})
	if _, err := p.GenerateSecrets(); err != nil {
		return player.Snapshot{}, fmt.Errorf("generate secrets: %w", err)
	}
	if _, err := p.GeneratePoints(); err != nil {
		return player.Snapshot{}, fmt.Errorf("generate points: %w", err)
	}
	if err := s.persist(ctx, p); err != nil {
		return player.Snapshot{}, err
	}
	s.players[id] = p
	s.logger.Info("created local player", "player", id, "commitments", len(p.SecretHashes()))
	return p.Snapshot(), nil
}

// Join adds a remote player from its published snapshot.
func (s *Session) Join(ctx context.Context, snap player.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		return ErrInvalidSnapshot.Wrap("empty id")
	}
	if _, ok := s.players[snap.ID]; ok {
		return ErrPlayerExists.Wrapf("%q", snap.ID)
	}
	if len(snap.SecretHashes) == 0 {
		return ErrInvalidSnapshot.Wrapf("player %q published no commitments", snap.ID)
	}
	p := player.FromSnapshot(s.cfg, snap)
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: player %q: %w", ErrInvalidSnapshot, snap.ID, err)
	}
	if err := s.persist(ctx, p); err != nil {
		return err
	}
	s.players[snap.ID] = p
	s.logger.Info("player joined", "player", snap.ID, "points", len(snap.Points))
	return nil
}

// IDs returns the session's player ids in ascending order.
func (s *Session) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Session) Snapshot(id string) (player.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return player.Snapshot{}, err
	}
	return p.Snapshot(), nil
}

// State returns a copy of the player's private state.
func (s *Session) State(id string) (player.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return player.State{}, err
	}
	return p.State(), nil
}

// Secret returns the known secret at index, e.g. to reveal it to peers.
func (s *Session) Secret(id string, index int) (ocpcrypto.Scalar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return ocpcrypto.Scalar{}, err
	}
	sec, ok := p.Secret(index)
	if !ok {
		return ocpcrypto.Scalar{}, ErrSecretUnknown.Wrapf("player %q slot %d", id, index)
	}
	return sec, nil
}

// PlaceBet records a bet and reports whether the player has now folded.
func (s *Session) PlaceBet(ctx context.Context, id string, bet player.Bet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.update(ctx, id, func(p *player.Player) error {
		return p.AddBet(bet)
	})
	if err != nil {
		return false, err
	}
	s.logger.Debug("bet placed", "player", id, "bet", bet.String())
	return p.HasFolded(), nil
}

func (s *Session) HasFolded(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return false, err
	}
	return p.HasFolded(), nil
}

// Deal adds cards to a player's hand.
func (s *Session) Deal(ctx context.Context, id string, cs ...cards.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.update(ctx, id, func(p *player.Player) error {
		return p.AddCards(cs...)
	})
	return err
}

// Status is a summary of one player's progress through the round.
type Status struct {
	ID          string `json:"id"`
	Committed   bool   `json:"committed"`
	Revealed    int    `json:"revealed"`
	Slots       int    `json:"slots"`
	Bets        int    `json:"bets"`
	HasFolded   bool   `json:"hasFolded"`
	CardsInHand int    `json:"cardsInHand"`
}

func (s *Session) Status(id string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return Status{}, err
	}
	return Status{
		ID:          id,
		Committed:   len(p.SecretHashes()) > 0,
		Revealed:    p.RevealedCount(),
		Slots:       p.DeckSize() + 1,
		Bets:        len(p.Bets()),
		HasFolded:   p.HasFolded(),
		CardsInHand: len(p.CardsInHand()),
	}, nil
}
