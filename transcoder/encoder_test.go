package transcoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wippyai/scale-codec/errors"
)

func TestEncoder_Primitives(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		name string
		text string
		want string
		id   TypeID
	}{
		{"bool true", "true", "01", tBool},
		{"bool false", "false", "00", tBool},
		{"char ascii", "A", "41000000", tChar},
		{"char multibyte", "€", "ac200000", tChar},
		{"char takes first rune", "xyz", "78000000", tChar},
		{"str", "abc", "0c616263", tStr},
		{"str empty", "", "00", tStr},
		{"str verbatim", `{"a":1}`, "1c" + "7b2261223a317d", tStr},
		{"u8", "255", "ff", tU8},
		{"u16", "513", "0102", tU16},
		{"u32", "1000", "e8030000", tU32},
		{"u32 plus sign", "+1000", "e8030000", tU32},
		{"u64", "1", "0100000000000000", tU64},
		{"u128 one", "1", "01000000000000000000000000000000", tU128},
		{"u128 max", "340282366920938463463374607431768211455", strings.Repeat("ff", 16), tU128},
		{"u128 high word", "18446744073709551616", "00000000000000000100000000000000", tU128},
		{"i8", "-1", "ff", tI8},
		{"i16", "-2", "feff", tI16},
		{"i32", "-7", "f9ffffff", tI32},
		{"i64 min", "-9223372036854775808", "0000000000000080", tI64},
		{"i128 minus one", "-1", strings.Repeat("ff", 16), tI128},
		{"i128 min", "-170141183460469231731687303715884105728", strings.Repeat("00", 15) + "80", tI128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.text, tt.id)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", tt.text, err)
			}
			if want := unhex(t, tt.want); !bytes.Equal(got, want) {
				t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
			}
		})
	}
}

func TestEncoder_PrimitiveErrors(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		name string
		text string
		kind errors.Kind
		id   TypeID
	}{
		{"bool word", "yes", errors.KindValueFormat, tBool},
		{"bool number", "1", errors.KindValueFormat, tBool},
		{"char empty", "", errors.KindValueFormat, tChar},
		{"char invalid utf8", "\xff", errors.KindInvalidUTF8, tChar},
		{"str invalid utf8", "a\xffb", errors.KindInvalidUTF8, tStr},
		{"u8 overflow", "256", errors.KindValueFormat, tU8},
		{"u32 negative", "-1", errors.KindValueFormat, tU32},
		{"u32 float", "1.5", errors.KindValueFormat, tU32},
		{"u32 empty", "", errors.KindValueFormat, tU32},
		{"u32 spaces", " 1", errors.KindValueFormat, tU32},
		{"i8 overflow", "128", errors.KindValueFormat, tI8},
		{"u128 overflow", "340282366920938463463374607431768211456", errors.KindValueFormat, tU128},
		{"i128 overflow", "170141183460469231731687303715884105728", errors.KindValueFormat, tI128},
		{"u256", "1", errors.KindUnsupported, tU256},
		{"i256", "1", errors.KindUnsupported, tI256},
		{"bit sequence", "[true]", errors.KindUnsupported, tBits},
		{"unknown type", "1", errors.KindSchema, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.text, tt.id)
			if err == nil {
				t.Fatalf("Encode(%q) expected error", tt.text)
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("Encode(%q) kind = %s, want %s (%v)", tt.text, errors.KindOf(err), tt.kind, err)
			}
		})
	}
}

func TestEncoder_Compact(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		text string
		want string
	}{
		{"0", "00"},
		{"63", "fc"},
		{"64", "0101"},
		{"16383", "fdff"},
		{"16384", "02000100"},
		{"1073741823", "feffffff"},
		{"1073741824", "0300000040"},
		{"1000000000000", "070010a5d4e8"},
		{"340282366920938463463374607431768211455", "33" + strings.Repeat("ff", 16)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := enc.Encode(tt.text, tCompact)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", tt.text, err)
			}
			if want := unhex(t, tt.want); !bytes.Equal(got, want) {
				t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
			}
		})
	}

	for _, bad := range []string{"-1", "abc", "", "340282366920938463463374607431768211456"} {
		if _, err := enc.Encode(bad, tCompact); !errors.IsKind(err, errors.KindValueFormat) {
			t.Errorf("Encode(%q) error = %v, want value_format", bad, err)
		}
	}
}

func TestEncoder_AccountID(t *testing.T) {
	enc := NewEncoder(testRegistry(t))
	want := unhex(t, aliceHex)

	inputs := []string{aliceSS58, "0x" + aliceHex, aliceHex}
	for _, id := range []TypeID{tAccount, tAccountID} {
		for _, in := range inputs {
			got, err := enc.Encode(in, id)
			if err != nil {
				t.Fatalf("Encode(%q, %d) error: %v", in, id, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("Encode(%q, %d) = %x, want %x", in, id, got, want)
			}
		}
	}

	bad := []string{
		"",
		"0x1234",
		"0x" + aliceHex + "00",
		"0xzz" + aliceHex[2:],
		"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ",
	}
	for _, in := range bad {
		if _, err := enc.Encode(in, tAccount); !errors.IsKind(err, errors.KindValueFormat) {
			t.Errorf("Encode(%q) error = %v, want value_format", in, err)
		}
	}
}

func TestEncoder_Composite(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	text := `{"owner": "0x` + aliceHex + `", "limit": 7, "label": "hi"}`
	got, err := enc.Encode(text, tConfig)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := unhex(t, aliceHex+"07000000"+"086869")
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %x, want %x", got, want)
	}

	// field order follows the schema, not the object
	reordered := `{"label": "hi", "limit": 7, "owner": "` + aliceSS58 + `"}`
	got, err = enc.Encode(reordered, tConfig)
	if err != nil {
		t.Fatalf("Encode reordered error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode reordered = %x, want %x", got, want)
	}
}

func TestEncoder_CompositeErrors(t *testing.T) {
	enc := NewEncoder(testRegistry(t))
	owner := `"owner": "0x` + aliceHex + `"`

	tests := []struct {
		name     string
		text     string
		kind     errors.Kind
		wantPath string
		id       TypeID
	}{
		{"not json", "hello", errors.KindValueFormat, "", tConfig},
		{"json array", "[1]", errors.KindValueFormat, "", tConfig},
		{"null", "null", errors.KindValueFormat, "", tConfig},
		{"missing field", `{` + owner + `, "limit": 1}`, errors.KindFieldMissing, "", tConfig},
		{"bad field value", `{` + owner + `, "limit": "x", "label": ""}`, errors.KindValueFormat, "limit", tConfig},
		{"unnamed field", `{"0": 1}`, errors.KindSchema, "", tPair},
		{"nested", `{"config": {` + owner + `, "limit": 1, "label": ""}, "items": [1, "z"], "maybe": null}`,
			errors.KindValueFormat, "items[1]", tNested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.text, tt.id)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("kind = %s, want %s (%v)", errors.KindOf(err), tt.kind, err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), "at "+tt.wantPath) {
				t.Errorf("error %q does not mention path %q", err, tt.wantPath)
			}
		})
	}
}

func TestEncoder_NestedStringMembers(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	config := `{"owner": "` + aliceSS58 + `", "limit": 1, "label": "a"}`
	prefix := aliceHex + "01000000" + "0461" + "00"

	tests := []struct {
		maybe string
		want  string
	}{
		{`null`, "00"},
		{`""`, "00"},
		{`"7"`, "010437"},
		{`7`, "010437"},
	}
	for _, tt := range tests {
		text := `{"config": ` + config + `, "items": [], "maybe": ` + tt.maybe + `}`
		got, err := enc.Encode(text, tNested)
		if err != nil {
			t.Fatalf("Encode(maybe=%s) error: %v", tt.maybe, err)
		}
		if want := unhex(t, prefix+tt.want); !bytes.Equal(got, want) {
			t.Errorf("Encode(maybe=%s) = %x, want %x", tt.maybe, got, want)
		}
	}
}

func TestEncoder_Nested(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	text := `{"config": {"owner": "` + aliceSS58 + `", "limit": 1, "label": "a"},
		"items": [1, 2], "maybe": null}`
	got, err := enc.Encode(text, tNested)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := unhex(t, aliceHex+"01000000"+"0461"+"08"+"01000000"+"02000000"+"00")
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %x, want %x", got, want)
	}
}

func TestEncoder_Option(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		text string
		want string
	}{
		{"", "00"},
		{"null", "00"},
		{"5", "010435"},
		{"hello", "011468656c6c6f"},
		{" 5 ", "010c203520"},
		{" null", "0114206e756c6c"},
	}
	for _, tt := range tests {
		got, err := enc.Encode(tt.text, tOption)
		if err != nil {
			t.Fatalf("Encode(%q) error: %v", tt.text, err)
		}
		if want := unhex(t, tt.want); !bytes.Equal(got, want) {
			t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
		}
	}
}

func TestEncoder_Result(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		text string
		want string
	}{
		{`{"Ok":5}`, "000435"},
		{`{"Err":"x"}`, "010c227822"},
		{`{"Err":"a<b"}`, "011422613c6222"},
		{`{"Ok":[1,2]}`, "00145b312c325d"},
		{`{"Ok": [1, 2]}`, "00145b312c325d"},
		{`{"Ok": {"b": 1, "a": "y"}}`, "003c" + "7b2261223a2279222c2262223a317d"},
		{`{"Ok":340282366920938463463374607431768211455}`,
			"009d00" + "333430323832333636393230393338343633343633333734363037343331373638323131343535"},
	}
	for _, tt := range tests {
		got, err := enc.Encode(tt.text, tResult)
		if err != nil {
			t.Fatalf("Encode(%q) error: %v", tt.text, err)
		}
		if want := unhex(t, tt.want); !bytes.Equal(got, want) {
			t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
		}
	}

	for _, bad := range []string{`{}`, `{"ok":1}`, `5`, ``, `null`} {
		if _, err := enc.Encode(bad, tResult); !errors.IsKind(err, errors.KindValueFormat) {
			t.Errorf("Encode(%q) error = %v, want value_format", bad, err)
		}
	}
}

func TestEncoder_GenericVariant(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no fields", `{"variant": "Stop"}`, "00"},
		{"no fields empty array", `{"variant": "Stop", "fields": []}`, "00"},
		{"declared index", `{"variant": "Move", "fields": [-2, 9]}`, "03feffffff09"},
		{"string field", `{"variant": "Say", "fields": ["hey"]}`, "070c686579"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.text, tAction)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", tt.text, err)
			}
			if want := unhex(t, tt.want); !bytes.Equal(got, want) {
				t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
			}
		})
	}

	errTests := []struct {
		name string
		text string
		kind errors.Kind
	}{
		{"unknown variant", `{"variant": "Jump"}`, errors.KindSchema},
		{"missing fields", `{"variant": "Move"}`, errors.KindArityMismatch},
		{"too few fields", `{"variant": "Move", "fields": [1]}`, errors.KindArityMismatch},
		{"too many fields", `{"variant": "Stop", "fields": [1]}`, errors.KindArityMismatch},
		{"fields not array", `{"variant": "Say", "fields": "hey"}`, errors.KindValueFormat},
		{"no variant key", `{"name": "Stop"}`, errors.KindValueFormat},
		{"variant not string", `{"variant": 3}`, errors.KindValueFormat},
		{"not json", `Stop`, errors.KindValueFormat},
		{"bad field", `{"variant": "Move", "fields": ["x", 1]}`, errors.KindValueFormat},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.text, tAction)
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("Encode(%q) error = %v, want %s", tt.text, err, tt.kind)
			}
		})
	}
}

func TestEncoder_Sequence(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		text string
		want string
	}{
		{"[]", "00"},
		{" [ ] ", "00"},
		{"[1, 2]", "080100000002000000"},
		{`["3"]`, "0403000000"},
	}
	for _, tt := range tests {
		got, err := enc.Encode(tt.text, tVecU32)
		if err != nil {
			t.Fatalf("Encode(%q) error: %v", tt.text, err)
		}
		if want := unhex(t, tt.want); !bytes.Equal(got, want) {
			t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
		}
	}

	long := "[" + strings.TrimSuffix(strings.Repeat("0,", 64), ",") + "]"
	got, err := enc.Encode(long, tVecU32)
	if err != nil {
		t.Fatalf("Encode(64 elements) error: %v", err)
	}
	if len(got) != 2+64*4 || got[0] != 0x01 || got[1] != 0x01 {
		t.Errorf("Encode(64 elements) prefix = %x, len %d", got[:2], len(got))
	}

	for _, bad := range []string{"", "null", "{}", "[1,", `"[1]"`} {
		if _, err := enc.Encode(bad, tVecU32); !errors.IsKind(err, errors.KindValueFormat) {
			t.Errorf("Encode(%q) error = %v, want value_format", bad, err)
		}
	}
}

func TestEncoder_ArrayAndTuple(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	tests := []struct {
		name string
		text string
		want string
		id   TypeID
	}{
		{"array", "[1, 2, 3]", "010203", tArrayU8},
		{"tuple", "[7, true]", "0700000001", tTuple},
		{"unit empty", "", "", tUnit},
		{"unit array", "[]", "", tUnit},
		{"unit null", "null", "", tUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.text, tt.id)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", tt.text, err)
			}
			if want := unhex(t, tt.want); !bytes.Equal(got, want) {
				t.Errorf("Encode(%q) = %x, want %x", tt.text, got, want)
			}
		})
	}

	errTests := []struct {
		name string
		text string
		kind errors.Kind
		id   TypeID
	}{
		{"array short", "[1, 2]", errors.KindArityMismatch, tArrayU8},
		{"array long", "[1, 2, 3, 4]", errors.KindArityMismatch, tArrayU8},
		{"array empty", "[]", errors.KindArityMismatch, tArrayU8},
		{"array element", "[1, 2, 300]", errors.KindValueFormat, tArrayU8},
		{"tuple short", "[7]", errors.KindArityMismatch, tTuple},
		{"tuple long", "[7, true, 1]", errors.KindArityMismatch, tTuple},
		{"tuple object", `{"0": 7}`, errors.KindValueFormat, tTuple},
		{"unit non-empty", "[1]", errors.KindArityMismatch, tUnit},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.text, tt.id)
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("Encode(%q) error = %v, want %s", tt.text, err, tt.kind)
			}
		})
	}
}

func TestEncoder_EncodeArgs(t *testing.T) {
	enc := NewEncoder(testRegistry(t))
	params := []Param{{Name: "flag", Type: tBool}, {Name: "value", Type: tU32}}

	got, err := enc.EncodeArgs(params, []string{"true", "1000"})
	if err != nil {
		t.Fatalf("EncodeArgs error: %v", err)
	}
	want := []byte{0x01, 0xE8, 0x03, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeArgs = %x, want %x", got, want)
	}

	got, err = enc.EncodeArgs(nil, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("EncodeArgs(nil, nil) = %x, %v; want empty, nil", got, err)
	}
}

func TestEncoder_EncodeArgsErrors(t *testing.T) {
	enc := NewEncoder(testRegistry(t))
	params := []Param{{Name: "flag", Type: tBool}, {Name: "value", Type: tU32}}

	for _, args := range [][]string{nil, {"true"}, {"true", "1", "2"}} {
		_, err := enc.EncodeArgs(params, args)
		if !errors.IsKind(err, errors.KindArityMismatch) {
			t.Errorf("EncodeArgs(%q) error = %v, want arity_mismatch", args, err)
		}
	}

	// count is checked before any argument is parsed
	_, err := enc.EncodeArgs(params, []string{"nope"})
	if !errors.IsKind(err, errors.KindArityMismatch) {
		t.Errorf("EncodeArgs with bad value and wrong count: %v, want arity_mismatch", err)
	}

	_, err = enc.EncodeArgs(params, []string{"true", "x"})
	if !errors.IsKind(err, errors.KindValueFormat) {
		t.Fatalf("EncodeArgs bad value: %v, want value_format", err)
	}
	if !strings.Contains(err.Error(), "arg[value]") {
		t.Errorf("error %q does not name the argument", err)
	}

	_, err = enc.EncodeArgs([]Param{{Type: tU8}}, []string{"x"})
	if err == nil || !strings.Contains(err.Error(), "arg[0]") {
		t.Errorf("unnamed param error %v does not use the position", err)
	}
}

func TestEncoder_MaxDepth(t *testing.T) {
	reg := testRegistry(t)

	enc := NewEncoder(reg, WithMaxDepth(4))
	got, err := enc.Encode("[[[]]]", tNestedVec)
	if err != nil {
		t.Fatalf("Encode shallow error: %v", err)
	}
	if want := []byte{0x04, 0x04, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("Encode shallow = %x, want %x", got, want)
	}

	_, err = enc.Encode("[[[[[]]]]]", tNestedVec)
	if !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("Encode deep error = %v, want overflow", err)
	}

	deep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	if _, err := NewEncoder(reg).Encode(deep, tNestedVec); !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("Encode past default depth error = %v, want overflow", err)
	}
}

func TestEncoder_EncodeTo(t *testing.T) {
	enc := NewEncoder(testRegistry(t))

	var buf bytes.Buffer
	buf.Write([]byte{0xaa, 0xbb})
	if err := enc.EncodeTo(&buf, "1", tU16); err != nil {
		t.Fatalf("EncodeTo error: %v", err)
	}
	if want := []byte{0xaa, 0xbb, 0x01, 0x00}; !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("EncodeTo = %x, want %x", buf.Bytes(), want)
	}
}
