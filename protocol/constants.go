// File: protocol/constants.go
//
// WebSocket wire protocol constants.

package protocol

const (
	// First header byte: FIN flag and the three reserved extension bits.
	FinBit  = 0x80
	Rsv1Bit = 0x40
	Rsv2Bit = 0x20
	Rsv3Bit = 0x10

	// Second header byte: mask-present flag and the 7-bit base length code.
	MaskBit     = 0x80
	LenCodeMask = 0x7F

	// Base length codes signalling an extended length field.
	LenCode16 = 126
	LenCode64 = 127

	// Frame geometry.
	MaxControlPayloadLen = 125
	MaxFrameHeaderLen    = 14 // 2 header bytes + 8 length bytes + 4 mask bytes
)
