// File: stream/reader.go
//
// Incremental frame accumulation over an io.Reader.

package stream

import (
	"io"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"

	"github.com/matthunz/ws-frame/api"
	"github.com/matthunz/ws-frame/pool"
	"github.com/matthunz/ws-frame/protocol"
)

const (
	// defaultBufSize is the initial accumulation buffer request.
	defaultBufSize = 4096

	// DefaultLimit caps accumulation buffer growth. A frame whose header
	// promises more than this aborts the stream instead of exhausting
	// memory.
	DefaultLimit = 1 << 20 // 1 MiB

	// maxEmptyReads bounds consecutive zero-byte reads from the source
	// before fill gives up with io.ErrNoProgress.
	maxEmptyReads = 100
)

// Handler consumes complete frames. The frame and its payload view are
// valid only until HandleFrame returns.
type Handler interface {
	HandleFrame(f *protocol.Frame) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(*protocol.Frame) error

// HandleFrame implements Handler.
func (fn HandlerFunc) HandleFrame(f *protocol.Frame) error { return fn(f) }

// Reader accumulates bytes from src and decodes frames incrementally.
// Decoding always restarts from the head of the unconsumed region, per the
// decoder's partial-retry contract; the Reader compacts consumed frames
// out of the buffer between reads so re-parsing stays cheap.
//
// Not safe for concurrent use; each connection owns its Reader.
type Reader struct {
	src    io.Reader
	bp     api.BytePool
	log    *logrus.Entry
	limit  int
	compat bool

	buf    []byte
	n      int // valid bytes in buf
	parsed int // bytes consumed by frames already queued

	pending *queue.Queue // frames decoded but not yet handed out
	closed  bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithPool sets the byte pool backing the accumulation buffer.
func WithPool(bp api.BytePool) Option {
	return func(r *Reader) { r.bp = bp }
}

// WithLimit caps the accumulation buffer at n bytes.
func WithLimit(n int) Option {
	return func(r *Reader) { r.limit = n }
}

// WithCompat126 decodes the base-length-code-126 extended length as the
// historical 4-byte field instead of the RFC 6455 2-byte one.
func WithCompat126() Option {
	return func(r *Reader) { r.compat = true }
}

// WithLogger routes per-frame debug logging through log.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Reader) { r.log = logrus.NewEntry(log) }
}

// NewReader wraps src in an accumulating frame reader.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:     src,
		limit:   DefaultLimit,
		pending: queue.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bp == nil {
		r.bp = pool.NewBytePool()
	}
	if r.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.log = logrus.NewEntry(l)
	}
	return r
}

// Next returns the next complete frame. The frame borrows the Reader's
// buffer: inspect or copy it before the next call on the Reader.
//
// io.EOF reports a clean end of stream on a frame boundary;
// io.ErrUnexpectedEOF reports a stream that ended mid-frame.
func (r *Reader) Next() (*protocol.Frame, error) {
	if r.closed {
		return nil, api.ErrReaderClosed
	}

	for r.pending.Length() == 0 {
		// Every frame handed out so far is dead now, so the consumed
		// prefix can be compacted away before reading more.
		r.compact()
		if err := r.fill(); err != nil {
			return nil, err
		}
		if err := r.scan(); err != nil {
			return nil, err
		}
	}
	return r.pending.Remove().(*protocol.Frame), nil
}

// Run dispatches frames to h until the stream ends or a call fails. A
// clean EOF returns nil.
func (r *Reader) Run(h Handler) error {
	for {
		f, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		r.log.WithFields(logrus.Fields{
			"opcode": f.Head.Op.String(),
			"fin":    f.Head.Finished,
			"masked": f.Mask != nil,
			"len":    len(f.Payload),
		}).Debug("frame")
		if err := h.HandleFrame(f); err != nil {
			return err
		}
	}
}

// Close releases the accumulation buffer back to the pool. The Reader is
// unusable afterwards.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.buf != nil {
		r.bp.Release(r.buf)
		r.buf = nil
	}
	return nil
}

// compact drops the consumed prefix, moving the unparsed tail to the
// front. Must only run while no handed-out frame is still alive.
func (r *Reader) compact() {
	if r.parsed == 0 {
		return
	}
	copy(r.buf, r.buf[r.parsed:r.n])
	r.n -= r.parsed
	r.parsed = 0
}

// fill performs one read from src, growing the buffer first if it is
// full. Growth doubles up to the configured limit.
func (r *Reader) fill() error {
	if r.buf == nil {
		r.buf = r.bp.Acquire(defaultBufSize)
		r.buf = r.buf[:cap(r.buf)]
	}
	if r.n == len(r.buf) {
		if len(r.buf) >= r.limit {
			return api.ErrBufferLimit
		}
		want := len(r.buf) * 2
		if want > r.limit {
			want = r.limit
		}
		grown := r.bp.Acquire(want)
		grown = grown[:cap(grown)]
		copy(grown, r.buf[:r.n])
		r.bp.Release(r.buf)
		r.buf = grown
	}

	// A misbehaving source may return (0, nil) indefinitely; cap the
	// retries the way bufio does instead of spinning.
	for i := 0; i < maxEmptyReads; i++ {
		nread, err := r.src.Read(r.buf[r.n:])
		r.n += nread
		if nread > 0 {
			return nil
		}
		if err != nil {
			if err == io.EOF && r.n > 0 {
				// Stream ended inside a frame.
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return io.ErrNoProgress
}

// scan decodes every complete frame sitting in the buffer into the
// pending queue. A partial tail is left for the next fill; the typed
// length fault aborts the stream.
func (r *Reader) scan() error {
	for {
		f := &protocol.Frame{Compat126: r.compat}
		st, err := f.Decode(r.buf[r.parsed:r.n])
		if err != nil {
			return err
		}
		if !st.Complete {
			return nil
		}
		r.pending.Add(f)
		r.parsed += st.Consumed
	}
}
