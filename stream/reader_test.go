package stream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/matthunz/ws-frame/api"
	"github.com/matthunz/ws-frame/protocol"
	"github.com/matthunz/ws-frame/stream"
)

// encode builds one wire frame for test input.
func encode(t testing.TB, op protocol.Opcode, payload []byte) []byte {
	t.Helper()
	wire, err := protocol.EncodeFrame(nil, protocol.Head{Op: op, Finished: true}, nil, payload)
	if err != nil {
		t.Fatal(err)
	}
	return wire
}

func TestReaderSingleFrame(t *testing.T) {
	wire := encode(t, protocol.OpcodeText, []byte("hello"))

	r := stream.NewReader(bytes.NewReader(wire))
	defer r.Close()

	f, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if f.Head.Op != protocol.OpcodeText || !bytes.Equal(f.Payload, []byte("hello")) {
		t.Errorf("frame = %+v payload %q", f.Head, f.Payload)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReaderDribbledBytes(t *testing.T) {
	// Two frames, one byte per read: the decoder must keep reporting
	// partial until the bytes are all in, then complete both frames.
	var wire []byte
	wire = append(wire, encode(t, protocol.OpcodeText, []byte("first"))...)
	wire = append(wire, encode(t, protocol.OpcodeBinary, bytes.Repeat([]byte{7}, 300))...)

	r := stream.NewReader(iotest.OneByteReader(bytes.NewReader(wire)))
	defer r.Close()

	var got [][]byte
	err := r.Run(stream.HandlerFunc(func(f *protocol.Frame) error {
		got = append(got, append([]byte(nil), f.Payload...))
		return nil
	}))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("frames = %d, want 2", len(got))
	}
	if !bytes.Equal(got[0], []byte("first")) {
		t.Errorf("first payload = %q", got[0])
	}
	if !bytes.Equal(got[1], bytes.Repeat([]byte{7}, 300)) {
		t.Errorf("second payload mismatch (%d bytes)", len(got[1]))
	}
}

func TestReaderManyFramesOneRead(t *testing.T) {
	var wire []byte
	const n = 10
	for i := 0; i < n; i++ {
		wire = append(wire, encode(t, protocol.OpcodeBinary, []byte{byte(i)})...)
	}

	r := stream.NewReader(bytes.NewReader(wire))
	defer r.Close()

	for i := 0; i < n; i++ {
		f, err := r.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if len(f.Payload) != 1 || f.Payload[0] != byte(i) {
			t.Errorf("frame %d payload = %v", i, f.Payload)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReaderMidFrameEOF(t *testing.T) {
	wire := encode(t, protocol.OpcodeText, []byte("truncated"))
	r := stream.NewReader(bytes.NewReader(wire[:len(wire)-2]))
	defer r.Close()

	if _, err := r.Next(); err != io.ErrUnexpectedEOF {
		t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}

// zeroReader produces zero bytes forever, after an initial header.
type zeroReader struct {
	header []byte
}

func (z *zeroReader) Read(p []byte) (int, error) {
	if len(z.header) > 0 {
		n := copy(p, z.header)
		z.header = z.header[n:]
		return n, nil
	}
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestReaderBufferLimit(t *testing.T) {
	// Header promises 2 MiB; the limit stops accumulation well short.
	header := []byte{0x82, 127}
	header = append(header, 0, 0, 0, 0, 0, 0x20, 0, 0)

	r := stream.NewReader(&zeroReader{header: header}, stream.WithLimit(8192))
	defer r.Close()

	if _, err := r.Next(); !errors.Is(err, api.ErrBufferLimit) {
		t.Errorf("err = %v, want ErrBufferLimit", err)
	}
}

// stuckReader reports progress without ever delivering a byte, which
// io.Reader permits.
type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

func TestReaderNoProgress(t *testing.T) {
	r := stream.NewReader(stuckReader{})
	defer r.Close()

	if _, err := r.Next(); err != io.ErrNoProgress {
		t.Errorf("err = %v, want io.ErrNoProgress", err)
	}
}

func TestReaderFrameTooLarge(t *testing.T) {
	wire := []byte{0x82, 127, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	r := stream.NewReader(bytes.NewReader(wire))
	defer r.Close()

	if _, err := r.Next(); !errors.Is(err, protocol.ErrFrameTooLarge) {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestReaderCompat126(t *testing.T) {
	wire := []byte{0x82, 126, 0x00, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03}
	r := stream.NewReader(bytes.NewReader(wire), stream.WithCompat126())
	defer r.Close()

	f, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !bytes.Equal(f.Payload, []byte{1, 2, 3}) {
		t.Errorf("payload = %v", f.Payload)
	}
}

func TestReaderHandlerError(t *testing.T) {
	wire := encode(t, protocol.OpcodeText, []byte("x"))
	r := stream.NewReader(bytes.NewReader(wire))
	defer r.Close()

	boom := errors.New("boom")
	err := r.Run(stream.HandlerFunc(func(*protocol.Frame) error { return boom }))
	if err != boom {
		t.Errorf("err = %v, want handler error", err)
	}
}

func TestReaderClosed(t *testing.T) {
	r := stream.NewReader(bytes.NewReader(nil))
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal("second Close failed:", err)
	}
	if _, err := r.Next(); !errors.Is(err, api.ErrReaderClosed) {
		t.Errorf("err = %v, want ErrReaderClosed", err)
	}
}
