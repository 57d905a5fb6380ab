package player

import "fmt"

type BetKind string

const (
	BetCheck BetKind = "check"
	BetCall  BetKind = "call"
	BetBet   BetKind = "bet"
	BetRaise BetKind = "raise"
	BetAllIn BetKind = "allin"
	BetFold  BetKind = "fold"
)

func (k BetKind) Valid() bool {
	switch k {
	case BetCheck, BetCall, BetBet, BetRaise, BetAllIn, BetFold:
		return true
	}
	return false
}

func ParseBetKind(s string) (BetKind, error) {
	k := BetKind(s)
	if !k.Valid() {
		return "", ErrInvalidBet.Wrapf("unknown kind %q", s)
	}
	return k, nil
}

// Bet is one betting action. Legality (turn order, minimum raise, folded
// players betting again) is decided by the rules engine, not here.
type Bet struct {
	Kind   BetKind `json:"kind"`
	Amount uint64  `json:"amount,omitempty"`
}

func (b Bet) String() string {
	if b.Amount == 0 {
		return string(b.Kind)
	}
	return fmt.Sprintf("%s %d", b.Kind, b.Amount)
}
