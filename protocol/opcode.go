// File: protocol/opcode.go
//
// Frame opcode enumeration and the total nibble mapping.

package protocol

// Opcode classifies a frame's purpose (data vs. control).
type Opcode uint8

const (
	OpcodeContinuation Opcode = iota
	OpcodeText
	OpcodeBinary
	OpcodeClose
	OpcodePing
	OpcodePong
	// OpcodeReserved is the catch-all for the nibbles RFC 6455 leaves
	// unassigned (3-7 and 11-15). Surfacing them is not an error; what to
	// do with a reserved opcode is the caller's call.
	OpcodeReserved
)

// opcodeNames is indexed by Opcode.
var opcodeNames = [...]string{
	OpcodeContinuation: "continuation",
	OpcodeText:         "text",
	OpcodeBinary:       "binary",
	OpcodeClose:        "close",
	OpcodePing:         "ping",
	OpcodePong:         "pong",
	OpcodeReserved:     "reserved",
}

// OpcodeFromNibble maps the low four bits of the first header byte to an
// Opcode. The mapping is total: every nibble value yields an Opcode, with
// unassigned values collapsing to OpcodeReserved.
func OpcodeFromNibble(b byte) Opcode {
	switch b & 0x0F {
	case 0x0:
		return OpcodeContinuation
	case 0x1:
		return OpcodeText
	case 0x2:
		return OpcodeBinary
	case 0x8:
		return OpcodeClose
	case 0x9:
		return OpcodePing
	case 0xA:
		return OpcodePong
	default:
		return OpcodeReserved
	}
}

// Nibble returns the wire nibble for op. Reserved opcodes have no single
// wire value, so the second result is false for OpcodeReserved and for
// values outside the enumeration.
func (op Opcode) Nibble() (byte, bool) {
	switch op {
	case OpcodeContinuation:
		return 0x0, true
	case OpcodeText:
		return 0x1, true
	case OpcodeBinary:
		return 0x2, true
	case OpcodeClose:
		return 0x8, true
	case OpcodePing:
		return 0x9, true
	case OpcodePong:
		return 0xA, true
	default:
		return 0, false
	}
}

// IsControl reports whether op is a control opcode (close, ping, pong).
func (op Opcode) IsControl() bool {
	return op == OpcodeClose || op == OpcodePing || op == OpcodePong
}

// String implements fmt.Stringer for logs and dumps.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "unknown"
}
