package compact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"

	"github.com/holiman/uint256"
)

// Mode boundaries
const (
	MaxSingleByte = 1<<6 - 1
	MaxTwoByte    = 1<<14 - 1
	MaxFourByte   = 1<<30 - 1

	// MaxBytes is the widest big-integer payload supported (128 bits).
	MaxBytes = 16
)

var (
	// ErrTruncated is returned when the input ends before the encoded value does.
	ErrTruncated = errors.New("compact: truncated input")
	// ErrOverflow is returned when a value does not fit in 128 bits.
	ErrOverflow = errors.New("compact: value exceeds 128 bits")
	// ErrNonCanonical is returned when a value is not encoded in its minimal mode.
	ErrNonCanonical = errors.New("compact: non-canonical encoding")
	// ErrTrailing is returned by DecodeExact when bytes follow the encoded value.
	ErrTrailing = errors.New("compact: trailing bytes")
)

// Write writes v in compact form
func Write(w *bytes.Buffer, v uint64) {
	switch {
	case v <= MaxSingleByte:
		w.WriteByte(byte(v) << 2)
	case v <= MaxTwoByte:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v<<2)|0b01)
		w.Write(buf[:])
	case v <= MaxFourByte:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v<<2)|0b10)
		w.Write(buf[:])
	default:
		n := (bits.Len64(v) + 7) / 8
		if n < 4 {
			n = 4
		}
		w.WriteByte(byte(n-4)<<2 | 0b11)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v)
		w.Write(buf[:n])
	}
}

// WriteBig writes v in compact form. v must fit in 128 bits.
func WriteBig(w *bytes.Buffer, v *uint256.Int) error {
	if v.IsUint64() {
		Write(w, v.Uint64())
		return nil
	}
	bl := v.BitLen()
	if bl > MaxBytes*8 {
		return ErrOverflow
	}
	n := (bl + 7) / 8
	w.WriteByte(byte(n-4)<<2 | 0b11)
	be := v.Bytes32()
	for i := 0; i < n; i++ {
		w.WriteByte(be[31-i])
	}
	return nil
}

// Encode returns the compact form of v
func Encode(v uint64) []byte {
	var buf bytes.Buffer
	Write(&buf, v)
	return buf.Bytes()
}

// EncodeBig returns the compact form of v
func EncodeBig(v *uint256.Int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBig(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read reads one compact value
func Read(r io.ByteReader) (*uint256.Int, error) {
	b0, err := readByte(r)
	if err != nil {
		return nil, err
	}

	switch b0 & 0b11 {
	case 0b00:
		return uint256.NewInt(uint64(b0 >> 2)), nil

	case 0b01:
		b1, err := readByte(r)
		if err != nil {
			return nil, err
		}
		v := uint64(binary.LittleEndian.Uint16([]byte{b0, b1}) >> 2)
		if v <= MaxSingleByte {
			return nil, ErrNonCanonical
		}
		return uint256.NewInt(v), nil

	case 0b10:
		buf := [4]byte{b0}
		for i := 1; i < 4; i++ {
			if buf[i], err = readByte(r); err != nil {
				return nil, err
			}
		}
		v := uint64(binary.LittleEndian.Uint32(buf[:]) >> 2)
		if v <= MaxTwoByte {
			return nil, ErrNonCanonical
		}
		return uint256.NewInt(v), nil

	default:
		n := int(b0>>2) + 4
		if n > MaxBytes {
			return nil, ErrOverflow
		}
		be := make([]byte, n)
		for i := n - 1; i >= 0; i-- {
			if be[i], err = readByte(r); err != nil {
				return nil, err
			}
		}
		// be[0] is the most significant byte
		if be[0] == 0 {
			return nil, ErrNonCanonical
		}
		v := new(uint256.Int).SetBytes(be)
		if v.IsUint64() && v.Uint64() <= MaxFourByte {
			return nil, ErrNonCanonical
		}
		return v, nil
	}
}

// ReadUint64 reads one compact value that must fit in 64 bits
func ReadUint64(r io.ByteReader) (uint64, error) {
	v, err := Read(r)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}

// Decode decodes the compact value at the start of b and reports how many bytes it used
func Decode(b []byte) (*uint256.Int, int, error) {
	r := bytes.NewReader(b)
	v, err := Read(r)
	if err != nil {
		return nil, 0, err
	}
	return v, len(b) - r.Len(), nil
}

// DecodeExact decodes b, which must hold exactly one compact value
func DecodeExact(b []byte) (*uint256.Int, error) {
	v, n, err := Decode(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, ErrTrailing
	}
	return v, nil
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err == io.EOF {
		return 0, ErrTruncated
	}
	return b, err
}
