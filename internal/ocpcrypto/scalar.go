package ocpcrypto

import (
	"fmt"

	"github.com/gtank/ristretto255"
)

const ScalarBytes = 32

// Scalar is a ristretto255 scalar (canonical 32-byte little-endian encoding).
// Player secrets are scalars.
type Scalar struct {
	v ristretto255.Scalar
}

func ScalarFromUint64(x uint64) Scalar {
	var b [32]byte
	copy(b[:], u64le(x))
	var s Scalar
	// Any uint64 is below the group order, so the encoding is always canonical.
	if _, err := s.v.SetCanonicalBytes(b[:]); err != nil {
		panic(fmt.Sprintf("scalar: uint64 %d not canonical: %v", x, err))
	}
	return s
}

func ScalarFromBytesCanonical(b []byte) (Scalar, error) {
	if len(b) != ScalarBytes {
		return Scalar{}, fmt.Errorf("scalar: expected %d bytes", ScalarBytes)
	}
	var s Scalar
	if _, err := s.v.SetCanonicalBytes(b); err != nil {
		return Scalar{}, fmt.Errorf("scalar: non-canonical: %w", err)
	}
	return s, nil
}

func ScalarFromUniformBytes(b []byte) (Scalar, error) {
	if len(b) != 64 {
		return Scalar{}, fmt.Errorf("scalar: expected 64 uniform bytes")
	}
	var s Scalar
	s.v.FromUniformBytes(b)
	return s, nil
}

// ScalarFromHex parses the 0x-prefixed form produced by String.
func ScalarFromHex(s string) (Scalar, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return Scalar{}, fmt.Errorf("scalar: %w", err)
	}
	return ScalarFromBytesCanonical(b)
}

func (s Scalar) Bytes() []byte {
	return s.v.Bytes()
}

func (s Scalar) IsZero() bool {
	var z ristretto255.Scalar
	return s.v.Equal(&z) == 1
}

func (s Scalar) Equal(o Scalar) bool {
	return s.v.Equal(&o.v) == 1
}

func (s Scalar) String() string {
	return BytesToHex(s.Bytes())
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return marshalHexJSON(s.Bytes())
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	b, err := unmarshalHexJSON(data)
	if err != nil {
		return fmt.Errorf("scalar: %w", err)
	}
	out, err := ScalarFromBytesCanonical(b)
	if err != nil {
		return err
	}
	*s = out
	return nil
}
