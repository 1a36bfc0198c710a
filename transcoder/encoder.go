package transcoder

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/ss58"
	"github.com/wippyai/scale-codec/transcoder/internal/numeric"
)

// Path names with special handling
const (
	nameOption = "Option"
	nameResult = "Result"
)

var accountNames = map[string]bool{
	"AccountId32": true,
	"AccountId":   true,
}

var (
	errEmptyChar     = stderrors.New("empty char value")
	errNoVariantName = stderrors.New(`missing string member "variant"`)
	errNoResultKey   = stderrors.New(`expected member "Ok" or "Err"`)
	errAccountLength = stderrors.New("account id must be 32 bytes")
)

type Encoder struct {
	resolver Resolver
	cfg      config
}

func NewEncoder(r Resolver, opts ...Option) *Encoder {
	return &Encoder{resolver: r, cfg: newConfig(opts)}
}

// EncodeArgs encodes one text value per declared parameter and concatenates the
// results in declaration order. The argument count is checked before anything is
// encoded.
func (e *Encoder) EncodeArgs(params []Param, args []string) ([]byte, error) {
	if len(args) != len(params) {
		return nil, errors.ArityMismatch(errors.PhaseEncode, nil, "argument count", len(params), len(args))
	}

	buf := getBuf()
	defer putBuf(buf)

	for i, p := range params {
		name := p.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		if err := e.encode(buf, args[i], p.Type, []string{"arg[" + name + "]"}, 0); err != nil {
			return nil, err
		}
	}

	Logger().Debug("encoded arguments",
		zap.Int("count", len(params)),
		zap.Int("bytes", buf.Len()))

	return detach(buf), nil
}

// Encode encodes a single text value against the type with the given id.
func (e *Encoder) Encode(text string, id TypeID) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)

	if err := e.EncodeTo(buf, text, id); err != nil {
		return nil, err
	}
	return detach(buf), nil
}

// EncodeTo appends the encoding of text to buf. On error buf may hold a partial
// encoding.
func (e *Encoder) EncodeTo(buf *bytes.Buffer, text string, id TypeID) error {
	return e.encode(buf, text, id, nil, 0)
}

func (e *Encoder) encode(buf *bytes.Buffer, text string, id TypeID, path []string, depth int) error {
	if depth >= e.cfg.maxDepth {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			TypeID(uint32(id)).
			Detail("type nesting exceeds depth %d", e.cfg.maxDepth).
			Build()
	}

	t, err := resolve(e.resolver, id, errors.PhaseEncode, path)
	if err != nil {
		return err
	}

	switch def := t.Def.(type) {
	case registry.Primitive:
		return e.encodePrimitive(buf, text, def.Prim, path)
	case registry.Compact:
		return e.encodeCompact(buf, text, t, path)
	case registry.Composite:
		return e.encodeComposite(buf, text, t, def, path, depth)
	case registry.Variant:
		return e.encodeVariant(buf, text, t, def, path, depth)
	case registry.Sequence:
		return e.encodeSequence(buf, text, t, def, path, depth)
	case registry.Array:
		return e.encodeArray(buf, text, t, def, path, depth)
	case registry.Tuple:
		return e.encodeTuple(buf, text, t, def, path, depth)
	case registry.BitSequence:
		return errors.Unsupported(errors.PhaseEncode, path, "bit sequence encoding is not supported")
	default:
		return errors.Unsupported(errors.PhaseEncode, path, "unknown type definition "+t.Def.Kind().String())
	}
}

func (e *Encoder) encodePrimitive(buf *bytes.Buffer, text string, kind registry.PrimitiveKind, path []string) error {
	switch kind {
	case registry.KindBool:
		v, err := numeric.ParseBool(text)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, err)
		}
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		return nil

	case registry.KindChar:
		if text == "" {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, errEmptyChar)
		}
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError && size <= 1 {
			return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(text))
		}
		writeLE(buf, uint64(r), 4)
		return nil

	case registry.KindStr:
		return writeStr(buf, text, path)

	case registry.KindU8, registry.KindU16, registry.KindU32, registry.KindU64:
		width := kind.Width()
		v, err := numeric.ParseUint(text, width*8)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, err)
		}
		writeLE(buf, v, width)
		return nil

	case registry.KindI8, registry.KindI16, registry.KindI32, registry.KindI64:
		width := kind.Width()
		v, err := numeric.ParseInt(text, width*8)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, err)
		}
		writeLE(buf, uint64(v), width)
		return nil

	case registry.KindU128:
		lo, hi, err := numeric.ParseU128(text)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, err)
		}
		writeLE(buf, lo, 8)
		writeLE(buf, hi, 8)
		return nil

	case registry.KindI128:
		lo, hi, err := numeric.ParseI128(text)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, path, kind.String(), text, err)
		}
		writeLE(buf, lo, 8)
		writeLE(buf, hi, 8)
		return nil

	case registry.KindU256, registry.KindI256:
		return errors.Unsupported(errors.PhaseEncode, path, kind.String()+" encoding is not supported")

	default:
		return errors.Unsupported(errors.PhaseEncode, path, "unknown primitive "+kind.String())
	}
}

// encodeCompact parses text as u128 whatever the inner type is.
func (e *Encoder) encodeCompact(buf *bytes.Buffer, text string, t *registry.Type, path []string) error {
	v, err := numeric.ParseBigUint(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	if err := compact.WriteBig(buf, v); err != nil {
		return errors.Overflow(errors.PhaseEncode, path, text, typeName(e.resolver, t))
	}
	return nil
}

func (e *Encoder) encodeComposite(buf *bytes.Buffer, text string, t *registry.Type, def registry.Composite, path []string, depth int) error {
	if accountNames[t.Name()] {
		return e.encodeAccountID(buf, text, t, path)
	}

	obj, err := parseObject(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}

	for _, f := range def.Fields {
		if f.Name == "" {
			return errors.New(errors.PhaseEncode, errors.KindSchema).
				Path(path...).
				TypeName(typeName(e.resolver, t)).
				TypeID(uint32(t.ID)).
				Detail("unnamed field in composite").
				Build()
		}
		raw, ok := obj[f.Name]
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, path, f.Name)
		}
		if err := e.encode(buf, valueText(raw), f.Type, appendPath(path, f.Name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// encodeAccountID accepts an SS58 address or a hex string holding exactly 32 bytes.
func (e *Encoder) encodeAccountID(buf *bytes.Buffer, text string, t *registry.Type, path []string) error {
	id, _, ssErr := ss58.DecodeAccountID(text)
	if ssErr == nil {
		buf.Write(id[:])
		return nil
	}

	cause := ssErr
	if len(text) == 2*ss58.AccountIDLen || strings.HasPrefix(text, "0x") {
		raw, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
		switch {
		case err != nil:
			cause = err
		case len(raw) != ss58.AccountIDLen:
			cause = errAccountLength
		default:
			buf.Write(raw)
			return nil
		}
	}
	return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, cause)
}

func (e *Encoder) encodeVariant(buf *bytes.Buffer, text string, t *registry.Type, def registry.Variant, path []string, depth int) error {
	switch t.Name() {
	case nameOption:
		return e.encodeOption(buf, text, path)
	case nameResult:
		return e.encodeResult(buf, text, t, path)
	}

	obj, err := parseObject(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	rawName, ok := obj["variant"]
	if !ok {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, errNoVariantName)
	}
	name, ok := jsonString(rawName)
	if !ok {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, errNoVariantName)
	}

	vc, ok := def.Case(name)
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindSchema).
			Path(path...).
			TypeName(typeName(e.resolver, t)).
			TypeID(uint32(t.ID)).
			Value(name).
			Detail("variant %q not found", name).
			Build()
	}

	variantPath := appendPath(path, name)
	var fields []json.RawMessage
	if rawFields, present := obj["fields"]; present {
		fields, err = parseArray(string(rawFields))
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, variantPath, typeName(e.resolver, t), string(rawFields), err)
		}
	}
	if len(fields) != len(vc.Fields) {
		return errors.ArityMismatch(errors.PhaseEncode, variantPath, "variant field count", len(vc.Fields), len(fields))
	}

	buf.WriteByte(vc.Index)
	for i, f := range vc.Fields {
		seg := f.Name
		if seg == "" {
			seg = indexSeg(i)
		}
		if err := e.encode(buf, valueText(fields[i]), f.Type, appendPath(variantPath, seg), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// encodeOption writes None for "null" or "", otherwise Some with text as a string
// payload. The text is written as given, surrounding whitespace included; only
// the exact literals select None.
func (e *Encoder) encodeOption(buf *bytes.Buffer, text string, path []string) error {
	if text == "null" || text == "" {
		buf.WriteByte(0)
		return nil
	}
	buf.WriteByte(1)
	return writeStr(buf, text, appendPath(path, "Some"))
}

// encodeResult writes Ok (0) or Err (1) followed by the member's compact JSON
// source as a string payload. String members keep their quotes.
func (e *Encoder) encodeResult(buf *bytes.Buffer, text string, t *registry.Type, path []string) error {
	obj, err := parseObject(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	for i, member := range []string{"Ok", "Err"} {
		raw, ok := obj[member]
		if !ok {
			continue
		}
		payload, err := jsonSource(raw)
		if err != nil {
			return errors.ValueFormat(errors.PhaseEncode, appendPath(path, member), typeName(e.resolver, t), string(raw), err)
		}
		buf.WriteByte(byte(i))
		return writeStr(buf, payload, appendPath(path, member))
	}
	return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, errNoResultKey)
}

func (e *Encoder) encodeSequence(buf *bytes.Buffer, text string, t *registry.Type, def registry.Sequence, path []string, depth int) error {
	arr, err := parseArray(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	compact.Write(buf, uint64(len(arr)))
	return e.encodeElems(buf, arr, func(int) TypeID { return def.Elem }, path, depth)
}

func (e *Encoder) encodeArray(buf *bytes.Buffer, text string, t *registry.Type, def registry.Array, path []string, depth int) error {
	arr, err := parseArray(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	if len(arr) != int(def.Len) {
		return errors.ArityMismatch(errors.PhaseEncode, path, "array length", int(def.Len), len(arr))
	}
	return e.encodeElems(buf, arr, func(int) TypeID { return def.Elem }, path, depth)
}

func (e *Encoder) encodeTuple(buf *bytes.Buffer, text string, t *registry.Type, def registry.Tuple, path []string, depth int) error {
	// the unit type also accepts an absent value
	if len(def.Elems) == 0 && (text == "" || text == "null") {
		return nil
	}
	arr, err := parseArray(text)
	if err != nil {
		return errors.ValueFormat(errors.PhaseEncode, path, typeName(e.resolver, t), text, err)
	}
	if len(arr) != len(def.Elems) {
		return errors.ArityMismatch(errors.PhaseEncode, path, "tuple length", len(def.Elems), len(arr))
	}
	return e.encodeElems(buf, arr, func(i int) TypeID { return def.Elems[i] }, path, depth)
}

func (e *Encoder) encodeElems(buf *bytes.Buffer, arr []json.RawMessage, elemType func(int) TypeID, path []string, depth int) error {
	for i, raw := range arr {
		if err := e.encode(buf, valueText(raw), elemType(i), appendPath(path, indexSeg(i)), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func writeStr(buf *bytes.Buffer, s string, path []string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
	}
	compact.Write(buf, uint64(len(s)))
	buf.WriteString(s)
	return nil
}

func writeLE(buf *bytes.Buffer, v uint64, width int) {
	for i := 0; i < width; i++ {
		buf.WriteByte(byte(v >> (8 * i)))
	}
}
