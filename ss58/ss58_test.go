package ss58

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

const (
	aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	aliceHex     = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
)

func TestDecodeAccountID(t *testing.T) {
	id, format, err := DecodeAccountID(aliceAddress)
	if err != nil {
		t.Fatalf("DecodeAccountID: %v", err)
	}
	if format != SubstrateFormat {
		t.Errorf("format = %d, want %d", format, SubstrateFormat)
	}
	if got := hex.EncodeToString(id[:]); got != aliceHex {
		t.Errorf("account id = %s, want %s", got, aliceHex)
	}
}

func TestEncodeAlice(t *testing.T) {
	raw, _ := hex.DecodeString(aliceHex)
	addr, err := Encode(SubstrateFormat, raw)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if addr != aliceAddress {
		t.Errorf("Encode = %s, want %s", addr, aliceAddress)
	}
}

func TestRoundTripFormats(t *testing.T) {
	raw, _ := hex.DecodeString(aliceHex)

	for _, format := range []uint16{0, 2, 42, 63, 64, 255, 1000, MaxFormat} {
		addr, err := Encode(format, raw)
		if err != nil {
			t.Fatalf("Encode(%d): %v", format, err)
		}
		gotFormat, payload, err := Decode(addr)
		if err != nil {
			t.Fatalf("Decode(%s): %v", addr, err)
		}
		if gotFormat != format {
			t.Errorf("format = %d, want %d", gotFormat, format)
		}
		if !bytes.Equal(payload, raw) {
			t.Errorf("format %d payload = %x, want %x", format, payload, raw)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	corrupted := []byte(aliceAddress)
	corrupted[10] = 'z'
	if corrupted[10] == aliceAddress[10] {
		corrupted[10] = 'y'
	}

	tests := []struct {
		name string
		addr string
		want error
	}{
		{"not base58", "0OIl", ErrInvalidBase58},
		{"too short", "1", ErrInvalidLength},
		{"bad checksum", string(corrupted), ErrInvalidChecksum},
		{"hex is not an address", "0x" + aliceHex, ErrInvalidBase58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.addr); !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) err = %v, want %v", tt.addr, err, tt.want)
			}
		})
	}
}

func TestDecodeAccountIDWrongLength(t *testing.T) {
	addr, err := Encode(SubstrateFormat, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := DecodeAccountID(addr); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("err = %v, want ErrInvalidLength", err)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(MaxFormat+1, []byte{1}); !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("err = %v, want ErrInvalidPrefix", err)
	}
	if _, err := Encode(42, nil); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("err = %v, want ErrInvalidLength", err)
	}
}
