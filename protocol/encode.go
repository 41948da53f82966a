// File: protocol/encode.go
//
// Outbound frame serialization over caller-managed buffers.

package protocol

import (
	"encoding/binary"

	"github.com/matthunz/ws-frame/api"
)

// ErrEncodeOpcode reports an attempt to encode a frame whose opcode has no
// wire nibble (OpcodeReserved).
var ErrEncodeOpcode = api.NewError(api.ErrCodeInvalidArgument,
	"opcode has no wire encoding")

// EncodeFrame appends the wire form of one frame to dst and returns the
// extended slice. The length field uses the minimal RFC 6455 width. When
// mask is non-nil the key is emitted and the payload bytes are masked as
// they are appended; the input payload is left untouched.
//
// Pass dst[:0] over a pooled buffer to avoid allocation.
func EncodeFrame(dst []byte, head Head, mask *[4]byte, payload []byte) ([]byte, error) {
	nibble, ok := head.Op.Nibble()
	if !ok {
		return nil, ErrEncodeOpcode
	}

	var b0 byte = nibble
	if head.Finished {
		b0 |= FinBit
	}
	if head.Rsv[0] {
		b0 |= Rsv1Bit
	}
	if head.Rsv[1] {
		b0 |= Rsv2Bit
	}
	if head.Rsv[2] {
		b0 |= Rsv3Bit
	}

	var maskBit byte
	if mask != nil {
		maskBit = MaskBit
	}

	var hdr [MaxFrameHeaderLen]byte
	hdr[0] = b0
	n := 2
	switch plen := len(payload); {
	case plen <= MaxControlPayloadLen:
		hdr[1] = byte(plen) | maskBit
	case plen <= 0xFFFF:
		hdr[1] = LenCode16 | maskBit
		binary.BigEndian.PutUint16(hdr[2:], uint16(plen))
		n += 2
	default:
		hdr[1] = LenCode64 | maskBit
		binary.BigEndian.PutUint64(hdr[2:], uint64(plen))
		n += 8
	}
	dst = append(dst, hdr[:n]...)

	if mask == nil {
		return append(dst, payload...), nil
	}

	dst = append(dst, mask[:]...)
	start := len(dst)
	dst = append(dst, payload...)
	Unmask(dst[start:], *mask)
	return dst, nil
}
