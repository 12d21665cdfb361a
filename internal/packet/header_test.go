package packet

import (
	"errors"
	"strings"
	"testing"
)

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		in   string
		want Protocol
		err  bool
	}{
		{"TCP", ProtocolTCP, false},
		{"udp", ProtocolUDP, false},
		{" Icmp ", ProtocolICMP, false},
		{"tcp/ip", ProtocolTCP, false},
		{"6", ProtocolTCP, false},
		{"17", ProtocolUDP, false},
		{"1", ProtocolICMP, false},
		{"89", 0, true},
		{"", 0, true},
		{"sctp", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseProtocol(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownProtocol) {
				t.Errorf("%q: expected ErrUnknownProtocol, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ProtocolNumber(256); !errors.Is(err, ErrUnknownProtocol) {
		t.Errorf("256: expected ErrUnknownProtocol, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	tests := map[string]Flags{
		"DF":  0b010,
		"df":  0b010,
		"Mf":  0b001,
		"":    0,
		"XX":  0,
		"DFM": 0,
	}
	for in, want := range tests {
		if got := ParseFlags(in); got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	good, err := fixedEncoder(9).Encode(srcAddr, dstAddr, []byte("payload"), DefaultOptions())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"short", good[:19], ErrMalformedHeader},
		{"version 6", mutate(func(b []byte) []byte { b[0] = 0x65; return b }), ErrMalformedHeader},
		{"ihl too small", mutate(func(b []byte) []byte { b[0] = 0x44; return b }), ErrMalformedHeader},
		{"truncated payload", good[:len(good)-1], ErrMalformedHeader},
		{"checksum", mutate(func(b []byte) []byte { b[8]--; return b }), ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	// Trailing bytes past the total length are not part of the datagram.
	d, err := Decode(append(append([]byte(nil), good...), 0xff, 0xff))
	if err != nil {
		t.Fatalf("decode with trailer: %v", err)
	}
	if string(d.Payload) != "payload" {
		t.Errorf("payload: got %q", d.Payload)
	}
}

func TestDescribe(t *testing.T) {
	d, err := fixedEncoder(0x00ff).Build(srcAddr, dstAddr, nil, Options{
		Protocol:  ProtocolUDP,
		TOS:       0xb9,
		TTL:       5,
		Flags:     FlagMoreFragments,
		IPOptions: []byte{0x01},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out := d.Describe()
	for _, want := range []string{
		"Header Length (4 bits): 6 words = 24 bytes",
		"DiffServ (6 bits): 46",
		"ECN (2 bits): 1",
		"Identification (16 bits): 255",
		"Flags (3 bits): 001 (Reserved: 0, DF: 0, MF: 1)",
		"Protocol (8 bits): 17 (UDP)",
		"Source Address (32 bits): 192.168.1.4",
		"Options: 01000000 (4 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestDescribePadsChecksum(t *testing.T) {
	h := Header{
		Version:  Version,
		IHL:      MinHeaderWords,
		TTL:      1,
		Protocol: ProtocolICMP,
		Checksum: 0x00ab,
		Src:      srcAddr,
		Dst:      dstAddr,
	}
	if out := h.Describe(); !strings.Contains(out, "Header Checksum (16 bits): 0x00ab\n") {
		t.Errorf("checksum not shown as four digits:\n%s", out)
	}
}
