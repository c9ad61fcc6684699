package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrChecksum is returned when the SS58 checksum does not match.
	ErrChecksum = errors.New("address: ss58 checksum mismatch")
	// ErrLength is returned for decoded lengths that carry no known payload.
	ErrLength = errors.New("address: unsupported ss58 length")
)

// payload length -> checksum length
var ss58Layouts = map[int]int{1: 1, 2: 1, 4: 1, 8: 1, 32: 2, 33: 2}

// DecodeSS58 returns the network prefix and payload of an SS58 string.
func DecodeSS58(value string) (uint16, []byte, error) {
	raw, err := base58.Decode(value)
	if err != nil {
		return 0, nil, fmt.Errorf("address: base58: %w", err)
	}
	if len(raw) < 2 {
		return 0, nil, ErrLength
	}
	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 3 {
			return 0, nil, ErrLength
		}
		lower := (raw[0]&0x3f)<<2 | raw[1]>>6
		upper := raw[1] & 0x3f
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, fmt.Errorf("address: reserved ss58 prefix byte %d", raw[0])
	}
	rest := len(raw) - prefixLen
	for payloadLen, checkLen := range ss58Layouts {
		if payloadLen+checkLen != rest {
			continue
		}
		body := raw[:prefixLen+payloadLen]
		sum := ss58Checksum(body)
		if !bytes.Equal(sum[:checkLen], raw[prefixLen+payloadLen:]) {
			return prefix, nil, ErrChecksum
		}
		payload := make([]byte, payloadLen)
		copy(payload, raw[prefixLen:prefixLen+payloadLen])
		return prefix, payload, nil
	}
	return prefix, nil, ErrLength
}

// EncodeSS58 renders a 32 or 33 byte public key for the given network prefix.
func EncodeSS58(prefix uint16, payload []byte) (string, error) {
	if _, ok := ss58Layouts[len(payload)]; !ok {
		return "", ErrLength
	}
	var head []byte
	switch {
	case prefix < 64:
		head = []byte{byte(prefix)}
	case prefix < 16384:
		first := byte((prefix&0xfc)>>2) | 0x40
		second := byte(prefix>>8) | byte(prefix&0x03)<<6
		head = []byte{first, second}
	default:
		return "", fmt.Errorf("address: prefix %d out of range", prefix)
	}
	body := append(head, payload...)
	sum := ss58Checksum(body)
	return base58.Encode(append(body, sum[:ss58Layouts[len(payload)]]...)), nil
}

func ss58Checksum(body []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(ss58Preimage)+len(body))
	buf = append(buf, ss58Preimage...)
	buf = append(buf, body...)
	return blake2b.Sum512(buf)
}
