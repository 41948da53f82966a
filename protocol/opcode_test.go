package protocol_test

import (
	"testing"

	"github.com/matthunz/ws-frame/protocol"
)

func TestOpcodeFromNibbleTotal(t *testing.T) {
	assigned := map[byte]protocol.Opcode{
		0x0: protocol.OpcodeContinuation,
		0x1: protocol.OpcodeText,
		0x2: protocol.OpcodeBinary,
		0x8: protocol.OpcodeClose,
		0x9: protocol.OpcodePing,
		0xA: protocol.OpcodePong,
	}
	for b := 0; b < 256; b++ {
		want, known := assigned[byte(b)&0x0F]
		if !known {
			want = protocol.OpcodeReserved
		}
		if got := protocol.OpcodeFromNibble(byte(b)); got != want {
			t.Errorf("OpcodeFromNibble(%#x) = %v, want %v", b, got, want)
		}
	}
}

func TestOpcodeNibbleRoundTrip(t *testing.T) {
	for _, op := range []protocol.Opcode{
		protocol.OpcodeContinuation,
		protocol.OpcodeText,
		protocol.OpcodeBinary,
		protocol.OpcodeClose,
		protocol.OpcodePing,
		protocol.OpcodePong,
	} {
		nib, ok := op.Nibble()
		if !ok {
			t.Fatalf("%v has no nibble", op)
		}
		if got := protocol.OpcodeFromNibble(nib); got != op {
			t.Errorf("round trip %v -> %#x -> %v", op, nib, got)
		}
	}

	if _, ok := protocol.OpcodeReserved.Nibble(); ok {
		t.Error("reserved opcode has a wire nibble")
	}
}

func TestOpcodeString(t *testing.T) {
	cases := map[protocol.Opcode]string{
		protocol.OpcodeContinuation: "continuation",
		protocol.OpcodeText:         "text",
		protocol.OpcodeBinary:       "binary",
		protocol.OpcodeClose:        "close",
		protocol.OpcodePing:         "ping",
		protocol.OpcodePong:         "pong",
		protocol.OpcodeReserved:     "reserved",
		protocol.Opcode(42):         "unknown",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}

func TestOpcodeIsControl(t *testing.T) {
	control := map[protocol.Opcode]bool{
		protocol.OpcodeClose: true,
		protocol.OpcodePing:  true,
		protocol.OpcodePong:  true,
	}
	for op := protocol.OpcodeContinuation; op <= protocol.OpcodeReserved; op++ {
		if got := op.IsControl(); got != control[op] {
			t.Errorf("%v.IsControl() = %v", op, got)
		}
	}
}
