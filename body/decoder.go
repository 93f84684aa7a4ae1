package body

import (
	"io"

	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/protocol/http1"
	pkgerrors "github.com/pkg/errors"
)

// maxPrealloc caps the memory reserved upfront for a declared body length, so a bare
// Content-Length cannot make the decoder allocate more than the peer actually sends.
const maxPrealloc = 64 * 1024

var (
	_ Decoder = new(FixedDecoder)
	_ Decoder = new(ChunkedDecoder)
	_ Decoder = new(UntilCloseDecoder)
	_ Decoder = NoneDecoder{}
)

// FixedDecoder collects exactly the declared number of bytes.
type FixedDecoder struct {
	maxSize, length int64
	buff            []byte
}

func NewFixedDecoder(cfg *config.Config) *FixedDecoder {
	return &FixedDecoder{maxSize: cfg.Body.MaxSize}
}

// Expect sets the length of the next body.
func (f *FixedDecoder) Expect(length int64) {
	f.length = length
}

func (f *FixedDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	if f.length > f.maxSize {
		return false, nil, pkgerrors.Wrapf(errors.ErrBodyTooLarge, "declared length %d", f.length)
	}

	if f.buff == nil {
		f.buff = make([]byte, 0, min(f.length, maxPrealloc))
	}

	left := f.length - int64(len(f.buff))
	if int64(len(data)) < left {
		f.buff = append(f.buff, data...)
		return false, nil, nil
	}

	f.buff = append(f.buff, data[:left]...)
	return true, data[left:], nil
}

func (f *FixedDecoder) EOF() error {
	if int64(len(f.buff)) < f.length {
		return pkgerrors.Wrapf(errors.ErrUnexpectedEOF, "got %d out of %d body bytes", len(f.buff), f.length)
	}

	return nil
}

func (f *FixedDecoder) Bytes() []byte {
	return f.buff
}

func (f *FixedDecoder) Trailers() *headers.Headers {
	return headers.New()
}

func (f *FixedDecoder) Reset() {
	f.buff = nil
	f.length = 0
}

// ChunkedDecoder decodes a chunked body along with its trailers.
type ChunkedDecoder struct {
	maxSize int64
	parser  *http1.ChunkedParser
	buff    []byte
}

func NewChunkedDecoder(cfg *config.Config) *ChunkedDecoder {
	return &ChunkedDecoder{
		maxSize: cfg.Body.MaxSize,
		parser:  http1.NewChunkedParser(cfg),
	}
}

func (c *ChunkedDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	for {
		chunk, rest, err := c.parser.Parse(data)
		if int64(len(c.buff))+int64(len(chunk)) > c.maxSize {
			return false, nil, pkgerrors.Wrapf(errors.ErrBodyTooLarge, "more than %d bytes", c.maxSize)
		}

		c.buff = append(c.buff, chunk...)

		switch err {
		case nil:
		case io.EOF:
			if c.buff == nil {
				c.buff = []byte{}
			}

			return true, rest, nil
		default:
			return false, nil, err
		}

		if len(rest) == 0 {
			return false, nil, nil
		}

		data = rest
	}
}

func (c *ChunkedDecoder) EOF() error {
	return pkgerrors.Wrap(errors.ErrUnexpectedEOF, "chunked body isn't terminated")
}

func (c *ChunkedDecoder) Bytes() []byte {
	return c.buff
}

func (c *ChunkedDecoder) Trailers() *headers.Headers {
	return c.parser.Trailers()
}

func (c *ChunkedDecoder) Reset() {
	c.buff = nil
	c.parser.Reset()
}

// UntilCloseDecoder collects everything up to the end of the stream.
type UntilCloseDecoder struct {
	maxSize int64
	buff    []byte
}

func NewUntilCloseDecoder(cfg *config.Config) *UntilCloseDecoder {
	return &UntilCloseDecoder{maxSize: cfg.Body.MaxSize}
}

func (u *UntilCloseDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	if int64(len(u.buff))+int64(len(data)) > u.maxSize {
		return false, nil, pkgerrors.Wrapf(errors.ErrBodyTooLarge, "more than %d bytes", u.maxSize)
	}

	u.buff = append(u.buff, data...)
	return false, nil, nil
}

func (u *UntilCloseDecoder) EOF() error {
	if u.buff == nil {
		u.buff = []byte{}
	}

	return nil
}

func (u *UntilCloseDecoder) Bytes() []byte {
	return u.buff
}

func (u *UntilCloseDecoder) Trailers() *headers.Headers {
	return headers.New()
}

func (u *UntilCloseDecoder) Reset() {
	u.buff = nil
}

// NoneDecoder represents the absence of a body. It completes immediately without
// consuming anything.
type NoneDecoder struct{}

func (NoneDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	return true, data, nil
}

func (NoneDecoder) EOF() error {
	return nil
}

func (NoneDecoder) Bytes() []byte {
	return nil
}

func (NoneDecoder) Trailers() *headers.Headers {
	return headers.New()
}

func (NoneDecoder) Reset() {}
