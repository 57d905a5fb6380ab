package player

import "onchainpoker/player/internal/ocpcrypto"

// RevealStatus classifies a revealed secret against the player's state.
type RevealStatus string

const (
	RevealAccepted   RevealStatus = "accepted"
	RevealDuplicate  RevealStatus = "duplicate"
	RevealConflict   RevealStatus = "conflict"
	RevealMismatch   RevealStatus = "mismatch"
	RevealOutOfRange RevealStatus = "outOfRange"
)

// AddSecret stores s at slot i if it matches the commitment published for i.
// A slot that is already filled reports true without comparing s, so retries
// are harmless; use CheckSecret to tell a retry from an equivocating peer.
// An out-of-range i panics.
func (p *Player) AddSecret(i int, s ocpcrypto.Scalar) bool {
	if p.secrets[i] != nil {
		return true
	}
	if !p.VerifySecret(i, s) {
		return false
	}
	v := s
	p.secrets[i] = &v
	return true
}

// VerifySecret reports whether s hashes to the commitment at i. It does not
// mutate the player and is safe to call concurrently with other readers.
func (p *Player) VerifySecret(i int, s ocpcrypto.Scalar) bool {
	if i < 0 || i >= len(p.secretHashes) {
		return false
	}
	return p.cfg.Hash(s) == p.secretHashes[i]
}

// CheckSecret classifies s without storing it.
func (p *Player) CheckSecret(i int, s ocpcrypto.Scalar) RevealStatus {
	if i < 0 || i >= len(p.secrets) {
		return RevealOutOfRange
	}
	if cur := p.secrets[i]; cur != nil {
		if cur.Equal(s) {
			return RevealDuplicate
		}
		return RevealConflict
	}
	if !p.VerifySecret(i, s) {
		return RevealMismatch
	}
	return RevealAccepted
}

// AddSecretStrict is AddSecret for untrusted input: conflicting values and bad
// indexes are reported as errors instead of being absorbed.
func (p *Player) AddSecretStrict(i int, s ocpcrypto.Scalar) (RevealStatus, error) {
	status := p.CheckSecret(i, s)
	switch status {
	case RevealAccepted:
		v := s
		p.secrets[i] = &v
		return status, nil
	case RevealDuplicate:
		return status, nil
	case RevealConflict:
		return status, ErrSecretConflict.Wrapf("player %q slot %d", p.id, i)
	case RevealMismatch:
		return status, ErrSecretMismatch.Wrapf("player %q slot %d", p.id, i)
	default:
		return status, ErrInvalidSecretIndex.Wrapf("player %q slot %d of %d", p.id, i, len(p.secrets))
	}
}

// Validate reports inconsistencies New does not reconcile: wrong slot count,
// commitments not matching the slot count, or known secrets that do not match
// their commitments.
func (p *Player) Validate() error {
	if len(p.secrets) != p.cfg.DeckSize+1 {
		return ErrInvalidState.Wrapf("expected %d secret slots, got %d", p.cfg.DeckSize+1, len(p.secrets))
	}
	if len(p.secretHashes) == 0 {
		return nil
	}
	if len(p.secretHashes) != len(p.secrets) {
		return ErrInvalidState.Wrapf("%d commitments for %d secret slots", len(p.secretHashes), len(p.secrets))
	}
	for i, s := range p.secrets {
		if s != nil && !p.VerifySecret(i, *s) {
			return ErrInvalidState.Wrapf("secret %d does not match its commitment", i)
		}
	}
	return nil
}
