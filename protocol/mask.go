// File: protocol/mask.go

package protocol

// Unmask XORs payload in place with the 4-byte masking key. Masking is its
// own inverse, so the same call serves both directions.
//
// Decode never calls this: it extracts the key into Frame.Mask and leaves
// the payload bytes exactly as they were on the wire. Applying the key is
// the caller's step, typically after the payload view has been handed off.
func Unmask(payload []byte, key [4]byte) {
	for i := range payload {
		payload[i] ^= key[i%4]
	}
}
