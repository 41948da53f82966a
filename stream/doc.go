// Package stream runs the read loop the frame decoder is designed to sit
// beneath: it accumulates bytes from an io.Reader into a pooled buffer,
// re-runs the decode pass as bytes arrive, and hands out complete frames
// without copying their payloads.
//
// Frames returned by a Reader borrow the accumulation buffer and are valid
// only until the next call on the same Reader.
package stream
