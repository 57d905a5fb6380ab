package ocpcrypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes accepts lowercase or uppercase hex with an optional 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("hex: empty string")
	}
	ss := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(ss)%2 != 0 {
		return nil, fmt.Errorf("hex: odd length")
	}
	b, err := hex.DecodeString(ss)
	if err != nil {
		return nil, fmt.Errorf("hex: %w", err)
	}
	return b, nil
}

// BytesToHex is the canonical text form used for points, scalars and commitments.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func marshalHexJSON(b []byte) ([]byte, error) {
	return []byte(`"` + BytesToHex(b) + `"`), nil
}

func unmarshalHexJSON(data []byte) ([]byte, error) {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("hex: expected JSON string")
	}
	return HexToBytes(s[1 : len(s)-1])
}
