package ocpcrypto

import (
	"fmt"

	"github.com/gtank/ristretto255"
)

const PointBytes = 32

// Point is a ristretto255 group element (canonical 32-byte encoding).
type Point struct {
	v ristretto255.Element
}

func PointBase() Point {
	var p Point
	p.v.Base()
	return p
}

func PointFromBytesCanonical(b []byte) (Point, error) {
	if len(b) != PointBytes {
		return Point{}, fmt.Errorf("point: expected %d bytes", PointBytes)
	}
	var p Point
	if _, err := p.v.SetCanonicalBytes(b); err != nil {
		return Point{}, fmt.Errorf("point: non-canonical: %w", err)
	}
	return p, nil
}

// PointFromUniformBytes maps 64 uniformly random bytes onto the group with
// unknown discrete log relative to the base point.
func PointFromUniformBytes(b []byte) (Point, error) {
	if len(b) != 64 {
		return Point{}, fmt.Errorf("point: expected 64 uniform bytes")
	}
	var p Point
	p.v.FromUniformBytes(b)
	return p, nil
}

func PointFromHex(s string) (Point, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return Point{}, fmt.Errorf("point: %w", err)
	}
	return PointFromBytesCanonical(b)
}

func (p Point) Bytes() []byte {
	return p.v.Bytes()
}

func (p Point) Equal(o Point) bool {
	return p.v.Equal(&o.v) == 1
}

func (p Point) String() string {
	return BytesToHex(p.Bytes())
}

// MarshalJSON is the point projection used in public snapshots.
func (p Point) MarshalJSON() ([]byte, error) {
	return marshalHexJSON(p.Bytes())
}

func (p *Point) UnmarshalJSON(data []byte) error {
	b, err := unmarshalHexJSON(data)
	if err != nil {
		return fmt.Errorf("point: %w", err)
	}
	out, err := PointFromBytesCanonical(b)
	if err != nil {
		return err
	}
	*p = out
	return nil
}
