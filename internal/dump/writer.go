// File: internal/dump/writer.go
// Package dump writes decoded frame records as NDJSON, optionally
// gzip-compressed when the filename ends in .gz.

package dump

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"github.com/matthunz/ws-frame/protocol"
)

// Record is one decoded frame head, flattened for NDJSON output. Payload
// bytes are deliberately not recorded; the dump is a header trace.
type Record struct {
	Time   time.Time `json:"time"`
	Peer   string    `json:"peer,omitempty"`
	Opcode string    `json:"opcode"`
	Fin    bool      `json:"fin"`
	Rsv    [3]bool   `json:"rsv"`
	Masked bool      `json:"masked"`
	Len    int       `json:"len"`
}

// NewRecord flattens a decoded frame.
func NewRecord(peer string, f *protocol.Frame) Record {
	return Record{
		Time:   time.Now().UTC(),
		Peer:   peer,
		Opcode: f.Head.Op.String(),
		Fin:    f.Head.Finished,
		Rsv:    f.Head.Rsv,
		Masked: f.Mask != nil,
		Len:    len(f.Payload),
	}
}

// Writer emits records to a file or stdout ("-"). Safe for concurrent use
// by per-connection goroutines.
type Writer struct {
	mu       sync.Mutex
	file     *os.File
	compress io.WriteCloser
	enc      *json.Encoder
}

// Open creates a record writer for filename. "-" writes NDJSON to stdout;
// a .gz suffix wraps the file in gzip at BestSpeed.
func Open(filename string) (*Writer, error) {
	w := &Writer{}

	if filename == "-" {
		w.enc = json.NewEncoder(os.Stdout)
		return w, nil
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	w.file = file

	var out io.Writer = file
	if filepath.Ext(filename) == ".gz" {
		w.compress, _ = gzip.NewWriterLevel(file, gzip.BestSpeed)
		out = w.compress
	}
	w.enc = json.NewEncoder(out)
	return w, nil
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(rec)
}

// Close flushes the compressor and closes the file, aggregating both
// errors.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs error
	if w.compress != nil {
		errs = multierr.Append(errs, w.compress.Close())
		w.compress = nil
	}
	if w.file != nil {
		errs = multierr.Append(errs, w.file.Close())
		w.file = nil
	}
	return errs
}
