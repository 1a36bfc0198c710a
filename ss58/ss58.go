// Package ss58 decodes and encodes SS58 checksummed account addresses.
//
// An address is base58(prefix ‖ payload ‖ checksum) where prefix is the one- or
// two-byte network format, payload is the 32-byte account id and checksum is the
// first two bytes of blake2b-512("SS58PRE" ‖ prefix ‖ payload).
package ss58

import (
	"bytes"
	"errors"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// AccountIDLen is the payload length of an account address.
	AccountIDLen = 32

	// SubstrateFormat is the generic network format (addresses starting with "5").
	SubstrateFormat uint16 = 42

	// MaxFormat is the largest format that fits the two-byte prefix.
	MaxFormat uint16 = 16383

	checksumLen = 2
)

var checksumPrefix = []byte("SS58PRE")

var (
	ErrInvalidBase58   = errors.New("ss58: invalid base58")
	ErrInvalidLength   = errors.New("ss58: invalid length")
	ErrInvalidPrefix   = errors.New("ss58: invalid format prefix")
	ErrInvalidChecksum = errors.New("ss58: invalid checksum")
)

// Decode returns the network format and the payload of an address.
func Decode(addr string) (uint16, []byte, error) {
	data, err := base58.Decode(addr)
	if err != nil {
		return 0, nil, ErrInvalidBase58
	}
	if len(data) < 2 {
		return 0, nil, ErrInvalidLength
	}

	var format uint16
	var prefixLen int
	switch {
	case data[0] < 64:
		format, prefixLen = uint16(data[0]), 1
	case data[0] < 128:
		lower := data[0]<<2 | data[1]>>6
		upper := data[1] & 0b0011_1111
		format, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, ErrInvalidPrefix
	}

	if len(data) < prefixLen+checksumLen+1 {
		return 0, nil, ErrInvalidLength
	}

	body := data[:len(data)-checksumLen]
	sum := checksum(body)
	if !bytes.Equal(sum[:checksumLen], data[len(data)-checksumLen:]) {
		return 0, nil, ErrInvalidChecksum
	}

	return format, body[prefixLen:], nil
}

// DecodeAccountID decodes an address that must carry a 32-byte account id.
func DecodeAccountID(addr string) ([AccountIDLen]byte, uint16, error) {
	var id [AccountIDLen]byte
	format, payload, err := Decode(addr)
	if err != nil {
		return id, 0, err
	}
	if len(payload) != AccountIDLen {
		return id, 0, ErrInvalidLength
	}
	copy(id[:], payload)
	return id, format, nil
}

// Encode renders payload as an address in the given network format.
func Encode(format uint16, payload []byte) (string, error) {
	if format > MaxFormat {
		return "", ErrInvalidPrefix
	}
	if len(payload) == 0 {
		return "", ErrInvalidLength
	}

	var body []byte
	if format < 64 {
		body = append(body, byte(format))
	} else {
		first := byte(format&0b1111_1100) >> 2
		second := byte(format>>8) | byte(format&0b11)<<6
		body = append(body, first|0b0100_0000, second)
	}
	body = append(body, payload...)

	sum := checksum(body)
	return base58.Encode(append(body, sum[:checksumLen]...)), nil
}

func checksum(body []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(checksumPrefix)+len(body))
	buf = append(buf, checksumPrefix...)
	buf = append(buf, body...)
	return blake2b.Sum512(buf)
}
