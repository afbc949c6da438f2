package frame

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// DefaultMaxFrame bounds the sealed body length a Reader accepts.
const DefaultMaxFrame = 16 << 20

var ErrClosed = errors.New("stream closed")

// Writer writes a numbered sequence of sealed frames to an underlying
// stream. The last frame carries FlagFinal; Close writes an empty one if
// WriteFinal was never called.
type Writer struct {
	w      io.Writer
	s      *Sealer
	seq    uint64
	closed bool
	buf    []byte
}

func NewWriter(w io.Writer, s *Sealer) *Writer {
	return &Writer{w: w, s: s}
}

// WriteFrame seals payload and writes it as the next frame.
func (w *Writer) WriteFrame(payload []byte) error {
	return w.write(payload, false)
}

// WriteFinal seals payload as the last frame of the stream.
func (w *Writer) WriteFinal(payload []byte) error {
	return w.write(payload, true)
}

// Close terminates the stream. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	return w.write(nil, true)
}

func (w *Writer) write(payload []byte, final bool) error {
	if w.closed {
		return ErrClosed
	}
	out, err := w.s.seal(w.buf[:0], payload, w.seq, final)
	if err != nil {
		return err
	}
	w.buf = out
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	w.seq++
	w.closed = final
	return nil
}

// Reader reads frames written by Writer. It is not safe for concurrent use.
type Reader struct {
	r        io.Reader
	s        *Sealer
	MaxFrame uint32
	next     uint64
	done     bool
	hdr      [HeaderSize]byte
	buf      []byte
}

func NewReader(r io.Reader, s *Sealer) *Reader {
	return &Reader{r: r, s: s, MaxFrame: DefaultMaxFrame}
}

// ReadFrame returns the next payload. Frames must arrive in the order they
// were written. It returns io.EOF only after the final frame, and
// io.ErrUnexpectedEOF if the stream ends before it.
func (r *Reader) ReadFrame() ([]byte, Header, error) {
	if r.done {
		if _, err := io.ReadFull(r.r, r.hdr[:1]); err != nil {
			return nil, Header{}, err
		}
		return nil, Header{}, ErrTrailing
	}
	if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, Header{}, err
	}
	h, err := ParseHeader(r.hdr[:])
	if err != nil {
		return nil, Header{}, err
	}
	if h.Length > r.MaxFrame {
		return nil, h, fmt.Errorf("%w: frame of %d bytes exceeds %d", ErrLength, h.Length, r.MaxFrame)
	}
	n := HeaderSize + int(h.Length)
	r.buf = slices.Grow(r.buf[:0], n)[:n]
	copy(r.buf, r.hdr[:])
	if _, err := io.ReadFull(r.r, r.buf[HeaderSize:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, h, err
	}
	payload, h, err := r.s.Open(nil, r.buf)
	if err != nil {
		return nil, h, err
	}
	if h.Seq != r.next {
		return nil, h, fmt.Errorf("%w: got frame %d, want %d", ErrSequence, h.Seq, r.next)
	}
	r.next++
	r.done = h.Final()
	return payload, h, nil
}
