package protocol_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matthunz/ws-frame/protocol"
)

func roundTrip(t *testing.T, head protocol.Head, mask *[4]byte, payload []byte) protocol.Frame {
	t.Helper()

	wire, err := protocol.EncodeFrame(nil, head, mask, payload)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	var f protocol.Frame
	st, err := f.Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !st.Complete || st.Consumed != len(wire) {
		t.Fatalf("status = %+v, want Complete(%d)", st, len(wire))
	}
	if *f.Head != head {
		t.Errorf("head = %+v, want %+v", *f.Head, head)
	}
	return f
}

func TestEncodeRoundTripLengths(t *testing.T) {
	head := protocol.Head{Op: protocol.OpcodeBinary, Finished: true}
	// One payload per length encoding: direct, 16-bit, 64-bit.
	for _, plen := range []int{0, 125, 126, 65535, 65536} {
		payload := bytes.Repeat([]byte{0x5A}, plen)
		f := roundTrip(t, head, nil, payload)
		if !bytes.Equal(f.Payload, payload) {
			t.Errorf("len %d: payload mismatch", plen)
		}
		if f.Mask != nil {
			t.Errorf("len %d: mask set on unmasked frame", plen)
		}
	}
}

func TestEncodeRoundTripHeadBits(t *testing.T) {
	head := protocol.Head{
		Op:       protocol.OpcodePing,
		Finished: false,
		Rsv:      [3]bool{true, false, true},
	}
	roundTrip(t, head, nil, []byte("ping me"))
}

func TestEncodeMasked(t *testing.T) {
	head := protocol.Head{Op: protocol.OpcodeText, Finished: true}
	key := [4]byte{1, 2, 3, 4}
	payload := []byte("hello, masked world")
	keep := append([]byte(nil), payload...)

	f := roundTrip(t, head, &key, payload)

	if !bytes.Equal(payload, keep) {
		t.Fatal("EncodeFrame modified the input payload")
	}
	if f.Mask == nil || *f.Mask != key {
		t.Fatalf("decoded mask = %v, want %v", f.Mask, key)
	}
	// Decode leaves the payload masked; applying the key restores it.
	if bytes.Equal(f.Payload, payload) {
		t.Fatal("wire payload was not masked")
	}
	protocol.Unmask(f.Payload, *f.Mask)
	if !bytes.Equal(f.Payload, payload) {
		t.Errorf("unmasked payload = %q, want %q", f.Payload, payload)
	}
}

func TestEncodeReservedOpcode(t *testing.T) {
	_, err := protocol.EncodeFrame(nil, protocol.Head{Op: protocol.OpcodeReserved}, nil, nil)
	if !errors.Is(err, protocol.ErrEncodeOpcode) {
		t.Fatalf("err = %v, want ErrEncodeOpcode", err)
	}
}

func TestEncodeAppendsToDst(t *testing.T) {
	dst := make([]byte, 0, 64)
	wire, err := protocol.EncodeFrame(dst, protocol.Head{Op: protocol.OpcodeText, Finished: true}, nil, []byte("hi"))
	if err != nil {
		t.Fatal(err)
	}
	if &wire[0] != &dst[:1][0] {
		t.Error("EncodeFrame reallocated despite sufficient capacity")
	}
}
