package player

import "onchainpoker/player/internal/ocpcrypto"

// Snapshot is the part of a player's state shared with other players before
// the reveal phase.
type Snapshot struct {
	ID           string            `json:"id,omitempty"`
	Points       []ocpcrypto.Point `json:"points,omitempty"`
	SecretHashes []string          `json:"secretHashes,omitempty"`
}

func (p *Player) Snapshot() Snapshot {
	var snap Snapshot
	snap.ID = p.id
	if len(p.points) > 0 {
		snap.Points = p.Points()
	}
	if len(p.secretHashes) > 0 {
		snap.SecretHashes = p.SecretHashes()
	}
	return snap
}
