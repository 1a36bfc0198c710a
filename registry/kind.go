package registry

// PrimitiveKind identifies a primitive type
type PrimitiveKind uint8

const (
	KindBool PrimitiveKind = iota
	KindChar
	KindStr
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindI256
)

var kindNames = [...]string{
	KindBool: "bool",
	KindChar: "char",
	KindStr:  "str",
	KindU8:   "u8",
	KindU16:  "u16",
	KindU32:  "u32",
	KindU64:  "u64",
	KindU128: "u128",
	KindU256: "u256",
	KindI8:   "i8",
	KindI16:  "i16",
	KindI32:  "i32",
	KindI64:  "i64",
	KindI128: "i128",
	KindI256: "i256",
}

var kindWidths = [...]int{
	KindBool: 1,
	KindChar: 4,
	KindStr:  0,
	KindU8:   1,
	KindU16:  2,
	KindU32:  4,
	KindU64:  8,
	KindU128: 16,
	KindU256: 32,
	KindI8:   1,
	KindI16:  2,
	KindI32:  4,
	KindI64:  8,
	KindI128: 16,
	KindI256: 32,
}

func (k PrimitiveKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Width returns the fixed wire width in bytes, or 0 for str.
func (k PrimitiveKind) Width() int {
	if int(k) < len(kindWidths) {
		return kindWidths[k]
	}
	return 0
}

func (k PrimitiveKind) IsSigned() bool {
	return k >= KindI8 && k <= KindI256
}

func (k PrimitiveKind) IsInteger() bool {
	return k >= KindU8 && k <= KindI256
}

// ParsePrimitiveKind maps a metadata primitive name ("u32", "str") to its kind.
func ParsePrimitiveKind(name string) (PrimitiveKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return PrimitiveKind(k), true
		}
	}
	return 0, false
}

// DefKind identifies the shape of a type definition
type DefKind uint8

const (
	DefPrimitive DefKind = iota
	DefComposite
	DefVariant
	DefSequence
	DefArray
	DefTuple
	DefCompact
	DefBitSequence
)

var defKindNames = [...]string{
	DefPrimitive:   "primitive",
	DefComposite:   "composite",
	DefVariant:     "variant",
	DefSequence:    "sequence",
	DefArray:       "array",
	DefTuple:       "tuple",
	DefCompact:     "compact",
	DefBitSequence: "bitsequence",
}

func (k DefKind) String() string {
	if int(k) < len(defKindNames) {
		return defKindNames[k]
	}
	return "unknown"
}
