package l2

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address is a fixed-width rollup account or contract identifier.
type Address [32]byte

// ZeroAddress is the empty rollup address.
var ZeroAddress Address

// AddressFromHex parses a 32-byte rollup address from its hex form, with or
// without the 0x prefix.
func AddressFromHex(s string) (Address, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Address{}, fmt.Errorf("invalid rollup address %q: %w", s, err)
	}
	if len(raw) != len(Address{}) {
		return Address{}, fmt.Errorf("invalid rollup address %q: expected %d bytes, got %d", s, len(Address{}), len(raw))
	}

	var a Address
	copy(a[:], raw)
	return a, nil
}

// Hex returns the 0x-prefixed hex form of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler so addresses travel as hex
// strings over JSON-RPC.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := AddressFromHex(string(text))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
