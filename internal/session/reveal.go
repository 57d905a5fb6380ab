package session

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"onchainpoker/player/internal/ocpcrypto"
	"onchainpoker/player/internal/player"
)

// verifyConcurrency bounds the goroutines hashing one batch of reveals.
var verifyConcurrency = runtime.GOMAXPROCS(0)

// Reveal is one secret disclosed by a peer.
type Reveal struct {
	Index  int              `json:"index"`
	Secret ocpcrypto.Scalar `json:"secret"`
}

// Report lists batch indexes (positions in the submitted slice) by outcome.
type Report struct {
	Player     string `json:"player"`
	Accepted   []int  `json:"accepted,omitempty"`
	Duplicate  []int  `json:"duplicate,omitempty"`
	Conflict   []int  `json:"conflict,omitempty"`
	Mismatch   []int  `json:"mismatch,omitempty"`
	OutOfRange []int  `json:"outOfRange,omitempty"`
}

// OK reports whether the batch contained no protocol violation.
func (r Report) OK() bool {
	return len(r.Conflict) == 0 && len(r.Mismatch) == 0 && len(r.OutOfRange) == 0
}

func (r *Report) add(pos int, status player.RevealStatus) {
	switch status {
	case player.RevealAccepted:
		r.Accepted = append(r.Accepted, pos)
	case player.RevealDuplicate:
		r.Duplicate = append(r.Duplicate, pos)
	case player.RevealConflict:
		r.Conflict = append(r.Conflict, pos)
	case player.RevealMismatch:
		r.Mismatch = append(r.Mismatch, pos)
	default:
		r.OutOfRange = append(r.OutOfRange, pos)
	}
}

// Reveal verifies a batch of secrets from player id and stores the ones that
// match their commitments. Verification runs concurrently against the
// unmodified player; storing happens afterwards in batch order on a copy that
// replaces the player once it is persisted. A cancelled or unpersisted batch
// is not applied. Violations are logged and returned in the report,
// not as an error.
func (s *Session) Reveal(ctx context.Context, id string, reveals []Reveal) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(id)
	if err != nil {
		return Report{}, err
	}

	statuses := make([]player.RevealStatus, len(reveals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for i, r := range reveals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			statuses[i] = p.CheckSecret(r.Index, r.Secret)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("verify reveals from %q: %w", id, err)
	}

	report := Report{Player: id}
	next := p.Clone()
	changed := false
	for i, r := range reveals {
		status := statuses[i]
		if status == player.RevealAccepted {
			// An earlier entry of this batch may have filled the slot.
			if cur, ok := next.Secret(r.Index); ok {
				status = player.RevealDuplicate
				if !cur.Equal(r.Secret) {
					status = player.RevealConflict
				}
			} else {
				next.AddSecret(r.Index, r.Secret)
				changed = true
			}
		}
		report.add(i, status)
		if status != player.RevealAccepted && status != player.RevealDuplicate {
			s.logger.Warn("rejected reveal", "player", id, "index", r.Index, "status", string(status))
		}
	}

	if changed {
		if err := s.persist(ctx, next); err != nil {
			return Report{}, err
		}
		s.players[id] = next
	}
	s.logger.Debug("reveals processed", "player", id, "accepted", len(report.Accepted), "revealed", next.RevealedCount())
	return report, nil
}
