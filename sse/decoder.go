package sse

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder turns arbitrary byte chunks into frames. It holds the bytes of an
// incomplete UTF-8 sequence and the text of an unterminated line between
// calls, so the frames produced do not depend on where the chunks split.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	utf8    *encoding.Decoder
	carry   []byte // trailing bytes of an incomplete rune
	line    []byte // decoded text after the last newline
	scratch [4096]byte
}

// NewDecoder creates a Decoder with empty buffers.
func NewDecoder() *Decoder {
	return &Decoder{utf8: unicode.UTF8.NewDecoder()}
}

// Feed decodes chunk and returns the frames completed by it, in order.
// Invalid UTF-8 is replaced with U+FFFD; a rune split across chunks is not.
func (d *Decoder) Feed(chunk []byte) []Frame {
	if len(chunk) == 0 {
		return nil
	}
	src := make([]byte, 0, len(d.carry)+len(chunk))
	src = append(src, d.carry...)
	src = append(src, chunk...)
	d.carry = d.carry[:0]

	for len(src) > 0 {
		nDst, nSrc, err := d.utf8.Transform(d.scratch[:], src, false)
		d.line = append(d.line, d.scratch[:nDst]...)
		src = src[nSrc:]
		if errors.Is(err, transform.ErrShortDst) {
			continue
		}
		if err != nil {
			// ErrShortSrc: the rest is the start of a rune.
			d.carry = append(d.carry, src...)
			break
		}
	}
	return d.split()
}

// Reset discards any buffered bytes and text. Whatever was left unterminated
// at end of data is dropped rather than surfaced as a frame.
func (d *Decoder) Reset() {
	d.utf8.Reset()
	d.carry = d.carry[:0]
	d.line = d.line[:0]
}

// Buffered reports how many bytes are held back awaiting more data.
func (d *Decoder) Buffered() int {
	return len(d.carry) + len(d.line)
}

func (d *Decoder) split() []Frame {
	var frames []Frame
	rest := d.line
	for {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(rest[:i], []byte{'\r'})
		rest = rest[i+1:]
		if payload, ok := bytes.CutPrefix(line, []byte(dataPrefix)); ok {
			frames = append(frames, Frame{Data: string(payload)})
		}
	}
	d.line = append(d.line[:0], rest...)
	return frames
}
