package replay

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Garsondee/Pong/internal/pong"
)

// maxRecordSize bounds a single record so a corrupt length prefix cannot make
// the reader allocate without limit.
const maxRecordSize = 1 << 16

// Writer appends records to an underlying stream. Call Flush when done.
type Writer struct {
	w      *bufio.Writer
	buf    []byte
	frames int
}

// NewWriter writes the header immediately.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	rw := &Writer{w: bufio.NewWriter(w)}
	if err := rw.record(marshalHeader(h)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return rw, nil
}

func (w *Writer) record(msg []byte) error {
	w.buf = protowire.AppendVarint(w.buf[:0], uint64(len(msg)))
	w.buf = append(w.buf, msg...)
	_, err := w.w.Write(w.buf)
	return err
}

// WriteFrame appends one tick.
func (w *Writer) WriteFrame(f Frame) error {
	if err := w.record(marshalFrame(f)); err != nil {
		return fmt.Errorf("write frame %d: %w", f.Tick, err)
	}
	w.frames++
	return nil
}

// Frames reports how many frames have been written.
func (w *Writer) Frames() int {
	return w.frames
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader reads a recording written by Writer.
type Reader struct {
	r      *bufio.Reader
	header Header
}

// NewReader reads and decodes the header.
func NewReader(r io.Reader) (*Reader, error) {
	rr := &Reader{r: bufio.NewReader(r)}
	msg, err := rr.record()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := unmarshalHeader(msg)
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	rr.header = h
	return rr, nil
}

func (r *Reader) Header() Header {
	return r.header
}

func (r *Reader) record() ([]byte, error) {
	n, err := binary.ReadUvarint(r.r)
	if err != nil {
		return nil, err
	}
	if n > maxRecordSize {
		return nil, fmt.Errorf("record of %d bytes exceeds limit", n)
	}
	msg := make([]byte, n)
	if _, err := io.ReadFull(r.r, msg); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return msg, nil
}

// Next returns the next frame, or io.EOF at a clean end of stream.
func (r *Reader) Next() (Frame, error) {
	msg, err := r.record()
	if err != nil {
		return Frame{}, err
	}
	f, err := unmarshalFrame(msg)
	if err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// Verify replays every frame in r on a fresh simulation built from the header
// and compares each resulting state with the recorded one. It returns the
// number of frames checked. A mismatch wraps ErrDiverged.
func Verify(r *Reader) (int, error) {
	h := r.Header()
	sim := pong.NewSim(h.Rules, pong.WithSeed(h.Seed))
	n := 0
	for {
		want, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		in := want.Input()
		sim.Step(in, want.DT)
		got := NewFrame(in, want.DT, sim.Snapshot())
		if got.Tick != want.Tick {
			return n, fmt.Errorf("%w: frame %d has tick %d, replay is at %d", ErrDiverged, n, want.Tick, got.Tick)
		}
		if d := got.diff(want); d != "" {
			return n, fmt.Errorf("%w at tick %d: %s", ErrDiverged, want.Tick, d)
		}
		n++
	}
}
