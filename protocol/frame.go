// File: protocol/frame.go
//
// Incremental zero-copy decoding of a single WebSocket frame.

package protocol

import (
	"encoding/binary"
	"math"

	"github.com/matthunz/ws-frame/api"
)

// ErrFrameTooLarge reports a decoded payload length that cannot be
// represented as a slice size on this platform. Length fields are
// attacker-controlled, so the narrowing is checked and surfaces here
// instead of truncating.
var ErrFrameTooLarge = api.NewError(api.ErrCodeFrameTooLarge,
	"payload length exceeds addressable range")

// Head is the decoded meaning of the first frame header byte.
// Immutable once constructed.
type Head struct {
	Op Opcode
	// Finished is the FIN bit: this frame ends its message.
	Finished bool
	// Rsv holds RSV1..RSV3, most significant first. The bits are only
	// meaningful under negotiated extensions; the decoder just surfaces
	// them.
	Rsv [3]bool
}

// Status reports the outcome of a single decode pass over a buffer.
//
// Complete means the buffer held the entire frame and Consumed says how
// many bytes it occupied, counted from the start of the buffer. When
// Complete is false the pass was partial: the caller should retry from
// byte 0 with a larger buffer, and Consumed carries nothing.
type Status struct {
	Complete bool
	Consumed int
}

var statusPartial = Status{}

// Frame is the mutable decode target. Each field stays nil until the
// decode pass that populates it; fields populate strictly in header order
// (head, then mask, then payload) and a partial pass leaves every
// already-decoded field in place for inspection.
//
// A Frame is owned by the caller across one or more Decode calls. The
// decoder never allocates or clears it; start a new logical frame with a
// fresh Frame or a Reset.
type Frame struct {
	// Head is the decoded first header byte.
	Head *Head
	// Mask is the 4-byte masking key, present only when the mask bit was
	// set. Decode extracts the key; it never applies it. See Unmask.
	Mask *[4]byte
	// Payload is a view into the decode buffer, valid only as long as the
	// buffer is. A zero-length payload decodes to an empty non-nil slice;
	// nil means the payload was not reached yet.
	Payload []byte

	// Compat126 switches the extended length field for base length code
	// 126 from the 2-byte form mandated by RFC 6455 to the 4-byte form
	// emitted by some historical peers. Leave it false unless you know
	// the peer is one of those.
	Compat126 bool
}

// Reset clears the decoded fields so the Frame can start a new logical
// frame. Compat126 is configuration and survives.
func (f *Frame) Reset() {
	f.Head = nil
	f.Mask = nil
	f.Payload = nil
}

// Decode parses one frame out of buf, populating f field by field.
//
// The pass runs the header phases in wire order and aborts the whole call
// the moment the buffer runs short, returning a partial Status with no
// error. Re-parsing always restarts from byte 0 of whatever buffer the
// next call supplies; the cursor is never persisted across calls.
//
// The only error condition is ErrFrameTooLarge. Anything else that looks
// malformed but short is just Partial; validating protocol-level rules is
// the caller's job.
func (f *Frame) Decode(buf []byte) (Status, error) {
	cur := NewCursor(buf)

	first, ok := cur.Next()
	if !ok {
		return statusPartial, nil
	}
	f.Head = &Head{
		Op:       OpcodeFromNibble(first),
		Finished: first&FinBit != 0,
		Rsv: [3]bool{
			first&Rsv1Bit != 0,
			first&Rsv2Bit != 0,
			first&Rsv3Bit != 0,
		},
	}

	second, ok := cur.Next()
	if !ok {
		return statusPartial, nil
	}

	var length uint64
	switch code := second & LenCodeMask; code {
	case LenCode16:
		width := 2
		if f.Compat126 {
			width = 4
		}
		ext, ok := cur.SliceTo(width)
		if !ok {
			return statusPartial, nil
		}
		length = readBigEndian(ext)
	case LenCode64:
		ext, ok := cur.SliceTo(8)
		if !ok {
			return statusPartial, nil
		}
		// The most significant bit is not validated to be zero; the
		// checked narrowing below rejects anything unaddressable anyway.
		length = binary.BigEndian.Uint64(ext)
	default:
		length = uint64(code)
	}

	if second&MaskBit != 0 {
		raw, ok := cur.SliceTo(4)
		if !ok {
			return statusPartial, nil
		}
		var key [4]byte
		copy(key[:], raw)
		f.Mask = &key
	}

	size, err := payloadSize(length)
	if err != nil {
		return statusPartial, err
	}
	payload, ok := cur.SliceTo(size)
	if !ok {
		return statusPartial, nil
	}
	f.Payload = payload

	return Status{Complete: true, Consumed: cur.Pos()}, nil
}

// payloadSize narrows a wire length to a slice size, failing instead of
// truncating when the value does not fit the platform int.
func payloadSize(length uint64) (int, error) {
	if length > uint64(math.MaxInt) {
		return 0, ErrFrameTooLarge
	}
	return int(length), nil
}

// readBigEndian folds up to 8 bytes into a big-endian unsigned integer.
// Used for the variable-width 126 path (2 bytes per RFC 6455, 4 in compat
// mode).
func readBigEndian(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
