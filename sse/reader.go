package sse

import "io"

const readSize = 4096

// Reader pulls frames from an io.Reader. Each call to Next either returns a
// queued frame or reads from the source until at least one frame completes.
type Reader struct {
	src   io.Reader
	dec   *Decoder
	buf   []byte
	queue []Frame
	err   error
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		src: r,
		dec: NewDecoder(),
		buf: make([]byte, readSize),
	}
}

// Next returns the next frame. Frames already decoded are returned before
// any read error. Once the source is exhausted and the queue is empty, Next
// returns io.EOF (or the source's error) on every call; an unterminated
// trailing line is discarded.
func (r *Reader) Next() (Frame, error) {
	for len(r.queue) == 0 {
		if r.err != nil {
			return Frame{}, r.err
		}
		n, err := r.src.Read(r.buf)
		if n > 0 {
			r.queue = append(r.queue, r.dec.Feed(r.buf[:n])...)
		}
		if err != nil {
			r.err = err
			r.dec.Reset()
		}
	}
	f := r.queue[0]
	r.queue = r.queue[1:]
	return f, nil
}
