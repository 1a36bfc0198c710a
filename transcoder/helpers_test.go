package transcoder

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/wippyai/scale-codec/registry"
)

// Type ids of testTypes
const (
	tBool TypeID = iota
	tChar
	tStr
	tU8
	tU16
	tU32
	tU64
	tU128
	tI8
	tI16
	tI32
	tI64
	tI128
	tU256
	tI256
	tBytes32
	tAccount
	tOption
	tResult
	tVecU32
	tArrayU8
	tTuple
	tUnit
	tCompact
	tConfig
	tAction
	tBits
	tLsb0
	tPair
	tNested
	tNestedVec
	tAccountID
)

const testTypes = `[
	{"id": 0, "type": {"def": {"primitive": "bool"}}},
	{"id": 1, "type": {"def": {"primitive": "char"}}},
	{"id": 2, "type": {"def": {"primitive": "str"}}},
	{"id": 3, "type": {"def": {"primitive": "u8"}}},
	{"id": 4, "type": {"def": {"primitive": "u16"}}},
	{"id": 5, "type": {"def": {"primitive": "u32"}}},
	{"id": 6, "type": {"def": {"primitive": "u64"}}},
	{"id": 7, "type": {"def": {"primitive": "u128"}}},
	{"id": 8, "type": {"def": {"primitive": "i8"}}},
	{"id": 9, "type": {"def": {"primitive": "i16"}}},
	{"id": 10, "type": {"def": {"primitive": "i32"}}},
	{"id": 11, "type": {"def": {"primitive": "i64"}}},
	{"id": 12, "type": {"def": {"primitive": "i128"}}},
	{"id": 13, "type": {"def": {"primitive": "u256"}}},
	{"id": 14, "type": {"def": {"primitive": "i256"}}},
	{"id": 15, "type": {"def": {"array": {"len": 32, "type": 3}}}},
	{"id": 16, "type": {"path": ["sp_core", "crypto", "AccountId32"],
		"def": {"composite": {"fields": [{"type": 15, "typeName": "[u8; 32]"}]}}}},
	{"id": 17, "type": {"path": ["Option"], "params": [{"name": "T", "type": 5}],
		"def": {"variant": {"variants": [
			{"name": "None", "index": 0},
			{"name": "Some", "index": 1, "fields": [{"type": 5}]}
		]}}}},
	{"id": 18, "type": {"path": ["Result"], "params": [{"name": "T", "type": 5}, {"name": "E", "type": 2}],
		"def": {"variant": {"variants": [
			{"name": "Ok", "index": 0, "fields": [{"type": 5}]},
			{"name": "Err", "index": 1, "fields": [{"type": 2}]}
		]}}}},
	{"id": 19, "type": {"def": {"sequence": {"type": 5}}}},
	{"id": 20, "type": {"def": {"array": {"len": 3, "type": 3}}}},
	{"id": 21, "type": {"def": {"tuple": [5, 0]}}},
	{"id": 22, "type": {"def": {"tuple": []}}},
	{"id": 23, "type": {"def": {"compact": {"type": 7}}}},
	{"id": 24, "type": {"path": ["my", "Config"], "def": {"composite": {"fields": [
		{"name": "owner", "type": 16},
		{"name": "limit", "type": 5},
		{"name": "label", "type": 2}
	]}}}},
	{"id": 25, "type": {"path": ["my", "Action"], "def": {"variant": {"variants": [
		{"name": "Stop", "index": 0},
		{"name": "Move", "index": 3, "fields": [{"name": "x", "type": 10}, {"type": 3}]},
		{"name": "Say", "index": 7, "fields": [{"type": 2}]}
	]}}}},
	{"id": 26, "type": {"def": {"bitsequence": {"bit_store_type": 3, "bit_order_type": 27}}}},
	{"id": 27, "type": {"path": ["bitvec", "order", "Lsb0"], "def": {"composite": {}}}},
	{"id": 28, "type": {"path": ["my", "Pair"], "def": {"composite": {"fields": [{"type": 5}, {"type": 5}]}}}},
	{"id": 29, "type": {"path": ["my", "Nested"], "def": {"composite": {"fields": [
		{"name": "config", "type": 24},
		{"name": "items", "type": 19},
		{"name": "maybe", "type": 17}
	]}}}},
	{"id": 30, "type": {"def": {"sequence": {"type": 30}}}},
	{"id": 31, "type": {"path": ["ink_primitives", "types", "AccountId"],
		"def": {"composite": {"fields": [{"type": 15}]}}}}
]`

const (
	aliceSS58 = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	aliceHex  = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
)

func testRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	r, err := registry.Parse([]byte(testTypes))
	if err != nil {
		t.Fatalf("registry.Parse: %v", err)
	}
	return r
}

// unhex decodes a hex string, ignoring spaces.
func unhex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}
