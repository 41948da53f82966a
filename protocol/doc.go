// Package protocol
//
// Implements incremental, zero-copy decoding of single WebSocket frames
// (RFC 6455) out of caller-supplied byte buffers.
//
// The decoder is built to sit beneath a socket read loop: it is called
// repeatedly as bytes accumulate, reports Partial without error when the
// buffer ends before the frame does, and leaves every field decoded so far
// in place for inspection. Payload bytes are never copied; a decoded
// payload is a view into the input buffer.
//
// Includes:
//   - Cursor: bounds-checked forward-only reader over a byte slice
//   - Frame decode with variable-width extended lengths and mask extraction
//   - Outbound frame encoding over caller-managed buffers
//   - Mask application as a separate caller-side step
//
// Out of scope by design: transport I/O, message reassembly across
// continuation frames, control-frame policy, and protocol-level validation
// (reserved bits, control-frame fragmentation). The decoder surfaces raw
// bits; the layer above decides what is legal.
package protocol
