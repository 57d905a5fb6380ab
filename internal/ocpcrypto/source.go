package ocpcrypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandSource draws points and secrets from uniform bytes read from R.
type RandSource struct {
	R io.Reader
}

// NewRandSource returns a source reading from r, or crypto/rand when r is nil.
func NewRandSource(r io.Reader) RandSource {
	if r == nil {
		r = rand.Reader
	}
	return RandSource{R: r}
}

func (s RandSource) uniform() ([]byte, error) {
	r := s.R
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, 64)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("rand source: %w", err)
	}
	return b, nil
}

func (s RandSource) Points(n int) ([]Point, error) {
	if n < 0 {
		return nil, fmt.Errorf("rand source: invalid point count %d", n)
	}
	out := make([]Point, n)
	for i := range out {
		b, err := s.uniform()
		if err != nil {
			return nil, err
		}
		if out[i], err = PointFromUniformBytes(b); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Secrets returns n non-zero scalars.
func (s RandSource) Secrets(n int) ([]Scalar, error) {
	if n < 0 {
		return nil, fmt.Errorf("rand source: invalid secret count %d", n)
	}
	out := make([]Scalar, 0, n)
	for len(out) < n {
		b, err := s.uniform()
		if err != nil {
			return nil, err
		}
		sc, err := ScalarFromUniformBytes(b)
		if err != nil {
			return nil, err
		}
		if sc.IsZero() {
			continue
		}
		out = append(out, sc)
	}
	return out, nil
}

const (
	deterministicPointDomain  = "ocp/v1/player/points"
	deterministicSecretDomain = "ocp/v1/player/secrets"
)

// DeterministicSource derives points and secrets from a seed. Successive calls
// continue the stream, so regenerating yields new values. Dev/testing only:
// anyone holding the seed can recompute every secret.
type DeterministicSource struct {
	seed          []byte
	pointCounter  uint32
	secretCounter uint64
}

func NewDeterministicSource(seed []byte) (*DeterministicSource, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("deterministic source: empty seed")
	}
	return &DeterministicSource{seed: append([]byte(nil), seed...)}, nil
}

func (d *DeterministicSource) Points(n int) ([]Point, error) {
	if n < 0 {
		return nil, fmt.Errorf("deterministic source: invalid point count %d", n)
	}
	out := make([]Point, n)
	for i := range out {
		p, err := HashToPoint(deterministicPointDomain, d.seed, u32le(d.pointCounter))
		if err != nil {
			return nil, err
		}
		d.pointCounter++
		out[i] = p
	}
	return out, nil
}

func (d *DeterministicSource) Secrets(n int) ([]Scalar, error) {
	if n < 0 {
		return nil, fmt.Errorf("deterministic source: invalid secret count %d", n)
	}
	out := make([]Scalar, 0, n)
	for len(out) < n {
		s, err := HashToScalar(deterministicSecretDomain, d.seed, u64le(d.secretCounter))
		if err != nil {
			return nil, err
		}
		d.secretCounter++
		if s.IsZero() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
