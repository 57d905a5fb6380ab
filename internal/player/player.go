package player

import (
	"encoding/json"
	"slices"

	"onchainpoker/player/internal/cards"
	"onchainpoker/player/internal/ocpcrypto"
)

// HashFunc derives the published commitment for a secret.
type HashFunc func(ocpcrypto.Scalar) string

// Source produces fresh points and secrets for a round.
type Source interface {
	Points(n int) ([]ocpcrypto.Point, error)
	Secrets(n int) ([]ocpcrypto.Scalar, error)
}

const DefaultDeckSize = cards.DeckSize

type Config struct {
	// DeckSize is the number of cards; a player holds DeckSize+1 secrets, the
	// extra slot being the shared secret.
	DeckSize int
	Hash     HashFunc
	Source   Source
}

func DefaultConfig() Config {
	return Config{
		DeckSize: DefaultDeckSize,
		Hash:     ocpcrypto.CommitSecret,
		Source:   ocpcrypto.NewRandSource(nil),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DeckSize <= 0 {
		c.DeckSize = def.DeckSize
	}
	if c.Hash == nil {
		c.Hash = def.Hash
	}
	if c.Source == nil {
		c.Source = def.Source
	}
	return c
}

// State is a player's full state. As a construction payload every field is
// optional; nil fields keep their defaults. It holds secrets and must never be
// sent to other players; use Snapshot for that.
type State struct {
	ID           string              `json:"id,omitempty"`
	Points       []ocpcrypto.Point   `json:"points,omitempty"`
	Secrets      []*ocpcrypto.Scalar `json:"secrets,omitempty"` // nil entry = not yet known
	SecretHashes []string            `json:"secretHashes,omitempty"`
	Bets         []Bet               `json:"bets,omitempty"`
	CardsInHand  []cards.Card        `json:"cardsInHand,omitempty"`
}

// Player holds one participant's commitments, revealed secrets, points, bets
// and hand. It does no locking; callers serialize mutations per player.
type Player struct {
	cfg Config

	id           string
	points       []ocpcrypto.Point
	secrets      []*ocpcrypto.Scalar
	secretHashes []string
	bets         []Bet
	cardsInHand  []cards.Card
}

// New builds a player from any subset of st. When no commitments are given and
// every secret slot is filled, the commitments are derived from the secrets.
func New(cfg Config, st State) *Player {
	cfg = cfg.withDefaults()
	p := &Player{
		cfg:          cfg,
		id:           st.ID,
		points:       []ocpcrypto.Point{},
		secrets:      make([]*ocpcrypto.Scalar, cfg.DeckSize+1),
		secretHashes: []string{},
		bets:         []Bet{},
		cardsInHand:  []cards.Card{},
	}
	if st.Points != nil {
		p.points = slices.Clone(st.Points)
	}
	if st.Secrets != nil {
		p.secrets = cloneSecrets(st.Secrets)
	}
	if st.SecretHashes != nil {
		p.secretHashes = slices.Clone(st.SecretHashes)
	}
	if st.Bets != nil {
		p.bets = slices.Clone(st.Bets)
	}
	if st.CardsInHand != nil {
		p.cardsInHand = slices.Clone(st.CardsInHand)
	}

	if len(p.secretHashes) == 0 && p.allSecretsKnown() {
		p.commit()
	}
	return p
}

// FromSnapshot builds a remote player from its published commitments.
func FromSnapshot(cfg Config, snap Snapshot) *Player {
	return New(cfg, State{
		ID:           snap.ID,
		Points:       snap.Points,
		SecretHashes: snap.SecretHashes,
	})
}

func cloneSecrets(in []*ocpcrypto.Scalar) []*ocpcrypto.Scalar {
	out := make([]*ocpcrypto.Scalar, len(in))
	for i, s := range in {
		if s != nil {
			v := *s
			out[i] = &v
		}
	}
	return out
}

func (p *Player) allSecretsKnown() bool {
	for _, s := range p.secrets {
		if s == nil {
			return false
		}
	}
	return true
}

func (p *Player) commit() {
	hashes := make([]string, len(p.secrets))
	for i, s := range p.secrets {
		hashes[i] = p.cfg.Hash(*s)
	}
	p.secretHashes = hashes
}

func (p *Player) ID() string    { return p.id }
func (p *Player) DeckSize() int { return p.cfg.DeckSize }

func (p *Player) Points() []ocpcrypto.Point { return slices.Clone(p.points) }
func (p *Player) SecretHashes() []string    { return slices.Clone(p.secretHashes) }
func (p *Player) Bets() []Bet               { return slices.Clone(p.bets) }
func (p *Player) CardsInHand() []cards.Card { return slices.Clone(p.cardsInHand) }

// Secrets returns a copy of the secret slots; nil entries are unknown.
func (p *Player) Secrets() []*ocpcrypto.Scalar { return cloneSecrets(p.secrets) }

// Secret returns the secret at i if it is known.
func (p *Player) Secret(i int) (ocpcrypto.Scalar, bool) {
	if i < 0 || i >= len(p.secrets) || p.secrets[i] == nil {
		return ocpcrypto.Scalar{}, false
	}
	return *p.secrets[i], true
}

// RevealedCount is the number of known secrets.
func (p *Player) RevealedCount() int {
	n := 0
	for _, s := range p.secrets {
		if s != nil {
			n++
		}
	}
	return n
}

// GeneratePoints replaces the player's points with a fresh set, one per card.
func (p *Player) GeneratePoints() (*Player, error) {
	pts, err := p.cfg.Source.Points(p.cfg.DeckSize)
	if err != nil {
		return p, err
	}
	p.points = pts
	return p, nil
}

// GenerateSecrets replaces every secret with a fresh one and commits to them.
func (p *Player) GenerateSecrets() (*Player, error) {
	fresh, err := p.cfg.Source.Secrets(p.cfg.DeckSize + 1)
	if err != nil {
		return p, err
	}
	secrets := make([]*ocpcrypto.Scalar, len(fresh))
	for i := range fresh {
		secrets[i] = &fresh[i]
	}
	p.secrets = secrets
	p.commit()
	return p, nil
}

// AddBet appends b to the bet history. Folding does not prevent later bets.
func (p *Player) AddBet(b Bet) error {
	if !b.Kind.Valid() {
		return ErrInvalidBet.Wrapf("unknown kind %q", b.Kind)
	}
	p.bets = append(p.bets, b)
	return nil
}

// HasFolded reports whether the most recent bet is a fold.
func (p *Player) HasFolded() bool {
	return len(p.bets) > 0 && p.bets[len(p.bets)-1].Kind == BetFold
}

// AddCards appends cs to the hand.
func (p *Player) AddCards(cs ...cards.Card) error {
	for _, c := range cs {
		if !c.Valid() {
			return ErrInvalidCard.Wrapf("card id %d", uint8(c))
		}
	}
	p.cardsInHand = append(p.cardsInHand, cs...)
	return nil
}

// ClearHand empties the hand between rounds.
func (p *Player) ClearHand() {
	p.cardsInHand = []cards.Card{}
}

// State returns a deep copy of the full private state.
func (p *Player) State() State {
	return State{
		ID:           p.id,
		Points:       p.Points(),
		Secrets:      p.Secrets(),
		SecretHashes: p.SecretHashes(),
		Bets:         p.Bets(),
		CardsInHand:  p.CardsInHand(),
	}
}

// Clone returns an independent copy sharing only the config.
func (p *Player) Clone() *Player {
	return New(p.cfg, p.State())
}

// MarshalJSON encodes only the public snapshot, so a Player can be handed to
// an encoder without leaking secrets, bets or hand.
func (p *Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Snapshot())
}
