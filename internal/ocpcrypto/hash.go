package ocpcrypto

import (
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

var (
	hashToScalarPrefix = []byte("OCPv1|hash_to_scalar|")
	hashToPointPrefix  = []byte("OCPv1|hash_to_point|")
	secretCommitPrefix = []byte("OCPv1|secret_commit|")
)

func updateLenBytes(h hash.Hash, b []byte) {
	h.Write(u32le(uint32(len(b))))
	h.Write(b)
}

func hashUniform(prefix []byte, domainSep string, msgs [][]byte) ([]byte, error) {
	h := sha512.New()
	h.Write(prefix)
	updateLenBytes(h, []byte(domainSep))
	for _, m := range msgs {
		if m == nil {
			return nil, fmt.Errorf("hash: nil msg")
		}
		updateLenBytes(h, m)
	}
	return h.Sum(nil), nil // 64 bytes
}

// HashToScalar derives a scalar from length-prefixed messages under a domain separator.
func HashToScalar(domainSep string, msgs ...[]byte) (Scalar, error) {
	digest, err := hashUniform(hashToScalarPrefix, domainSep, msgs)
	if err != nil {
		return Scalar{}, fmt.Errorf("hashToScalar: %w", err)
	}
	return ScalarFromUniformBytes(digest)
}

// HashToPoint derives a group element with unknown discrete log.
func HashToPoint(domainSep string, msgs ...[]byte) (Point, error) {
	digest, err := hashUniform(hashToPointPrefix, domainSep, msgs)
	if err != nil {
		return Point{}, fmt.Errorf("hashToPoint: %w", err)
	}
	return PointFromUniformBytes(digest)
}

// CommitSecret is the commitment published for a secret before it is revealed:
// SHA3-256 over the domain prefix and the canonical scalar encoding, as 0x hex.
func CommitSecret(s Scalar) string {
	h := sha3.New256()
	h.Write(secretCommitPrefix)
	updateLenBytes(h, s.Bytes())
	return BytesToHex(h.Sum(nil))
}
