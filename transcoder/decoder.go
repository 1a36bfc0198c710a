package transcoder

import (
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/transcoder/internal/numeric"
)

type Decoder struct {
	resolver Resolver
	cfg      config
}

func NewDecoder(r Resolver, opts ...Option) *Decoder {
	return &Decoder{resolver: r, cfg: newConfig(opts)}
}

// DecodeResult decodes the return value of a call. A nil return type means the
// call returns nothing and yields nil.
func (d *Decoder) DecodeResult(data []byte, ret *TypeID) (any, error) {
	if ret == nil {
		return nil, nil
	}
	return d.decode(data, *ret, []string{"result"})
}

// Decode decodes data against the type with the given id.
//
// Primitives yield bool, uint64, int64 or string; 128-bit integers yield decimal
// strings. Any other type yields "0x" followed by the hex of all of data.
func (d *Decoder) Decode(data []byte, id TypeID) (any, error) {
	return d.decode(data, id, nil)
}

func (d *Decoder) decode(data []byte, id TypeID, path []string) (any, error) {
	t, err := resolve(d.resolver, id, errors.PhaseDecode, path)
	if err != nil {
		return nil, err
	}

	prim, ok := t.Def.(registry.Primitive)
	if !ok || prim.Prim == registry.KindU256 || prim.Prim == registry.KindI256 {
		Logger().Debug("decoding as raw bytes",
			zap.Uint32("type_id", uint32(id)),
			zap.Stringer("kind", t.Def.Kind()),
			zap.Int("bytes", len(data)))
		return HexString(data), nil
	}

	v, n, err := decodePrimitive(data, prim.Prim, path)
	if err != nil {
		return nil, err
	}
	if d.cfg.strictDecode && n != len(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			TypeName(prim.Prim.String()).
			Detail("%d trailing bytes after value", len(data)-n).
			Build()
	}
	return v, nil
}

// decodePrimitive returns the value and the number of bytes it occupied.
func decodePrimitive(data []byte, kind registry.PrimitiveKind, path []string) (any, int, error) {
	if kind == registry.KindStr {
		return decodeStr(data, path)
	}

	width := kind.Width()
	if len(data) < width {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			TypeName(kind.String()).
			Value(len(data)).
			Detail("need %d bytes, have %d", width, len(data)).
			Build()
	}
	b := data[:width]

	switch kind {
	case registry.KindBool:
		switch b[0] {
		case 0:
			return false, 1, nil
		case 1:
			return true, 1, nil
		}
		return nil, 0, errors.InvalidData(errors.PhaseDecode, path, "invalid bool byte 0x"+hex.EncodeToString(b))

	case registry.KindChar:
		r := rune(binary.LittleEndian.Uint32(b))
		if !numeric.ValidateChar(r) {
			return nil, 0, errors.InvalidData(errors.PhaseDecode, path, "invalid char 0x"+hex.EncodeToString(b))
		}
		return string(r), 4, nil

	case registry.KindU8:
		return uint64(b[0]), 1, nil
	case registry.KindU16:
		return uint64(binary.LittleEndian.Uint16(b)), 2, nil
	case registry.KindU32:
		return uint64(binary.LittleEndian.Uint32(b)), 4, nil
	case registry.KindU64:
		return binary.LittleEndian.Uint64(b), 8, nil

	case registry.KindI8:
		return int64(int8(b[0])), 1, nil
	case registry.KindI16:
		return int64(int16(binary.LittleEndian.Uint16(b))), 2, nil
	case registry.KindI32:
		return int64(int32(binary.LittleEndian.Uint32(b))), 4, nil
	case registry.KindI64:
		return int64(binary.LittleEndian.Uint64(b)), 8, nil

	case registry.KindU128:
		return numeric.FormatU128(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])), 16, nil
	case registry.KindI128:
		return numeric.FormatI128(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])), 16, nil
	}

	return nil, 0, errors.Unsupported(errors.PhaseDecode, path, "unknown primitive "+kind.String())
}

func decodeStr(data []byte, path []string) (any, int, error) {
	n, prefix, err := compact.Decode(data)
	if err != nil {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			TypeName("str").
			Cause(err).
			Detail("string length prefix").
			Build()
	}
	rest := data[prefix:]
	if !n.IsUint64() || n.Uint64() > uint64(len(rest)) {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			TypeName("str").
			Value(len(rest)).
			Detail("need %s bytes, have %d", n.Dec(), len(rest)).
			Build()
	}
	size := int(n.Uint64())
	s := rest[:size]
	if !utf8.Valid(s) {
		return nil, 0, errors.InvalidUTF8(errors.PhaseDecode, path, s)
	}
	return string(s), prefix + size, nil
}

// HexString renders data as "0x" followed by lowercase hex.
func HexString(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}
