// Package address annotates contract addresses for the review step. The
// annotation is informational only: the wizard accepts any non-empty text.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Format names the address encoding that was recognised.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatSS58    Format = "ss58"
	FormatH160    Format = "h160"
)

var ss58Preimage = []byte("SS58PRE")

var networks = map[uint16]string{
	0:  "polkadot",
	2:  "kusama",
	42: "substrate",
}

// Info describes what Inspect found.
type Info struct {
	Format     Format
	Network    string
	Prefix     uint16
	ChecksumOK bool
	Detail     string
}

// Label is the one-line description shown next to the address.
func (i Info) Label() string {
	switch i.Format {
	case FormatSS58:
		if !i.ChecksumOK {
			return "SS58 · checksum mismatch"
		}
		return fmt.Sprintf("SS58 · %s", i.Network)
	case FormatH160:
		return "H160 · 20-byte hex"
	default:
		if i.Detail != "" {
			return "unrecognised · " + i.Detail
		}
		return "unrecognised"
	}
}

// Inspect classifies value without ever rejecting it.
func Inspect(value string) Info {
	value = strings.TrimSpace(value)
	if value == "" {
		return Info{Format: FormatUnknown, Detail: "empty"}
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		raw, err := hex.DecodeString(value[2:])
		if err == nil && len(raw) == 20 {
			return Info{Format: FormatH160, ChecksumOK: true}
		}
		return Info{Format: FormatUnknown, Detail: "not a 20-byte hex address"}
	}
	prefix, _, err := DecodeSS58(value)
	if err != nil {
		if errors.Is(err, ErrChecksum) {
			return Info{Format: FormatSS58, Prefix: prefix, Network: networkName(prefix), Detail: err.Error()}
		}
		return Info{Format: FormatUnknown, Detail: err.Error()}
	}
	return Info{Format: FormatSS58, Prefix: prefix, Network: networkName(prefix), ChecksumOK: true}
}

func networkName(prefix uint16) string {
	if name, ok := networks[prefix]; ok {
		return name
	}
	return fmt.Sprintf("network %d", prefix)
}
