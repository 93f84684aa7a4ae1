package body

import (
	"io"
	"strconv"

	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/protocol/http1"
)

const crlf = "\r\n"

// ChunkedWriter encodes every Write as a separate chunk. Close writes the terminating
// zero-length chunk, but doesn't close the underlying writer.
type ChunkedWriter struct {
	w        io.Writer
	buff     []byte
	trailers *headers.Headers
	closed   bool
}

func NewChunkedWriter(w io.Writer) *ChunkedWriter {
	return &ChunkedWriter{w: w}
}

// Write writes b as a single chunk. Empty writes are no-op, as a zero-length chunk
// terminates the body.
func (c *ChunkedWriter) Write(b []byte) (n int, err error) {
	if c.closed {
		return 0, io.ErrClosedPipe
	}

	if len(b) == 0 {
		return 0, nil
	}

	buff := strconv.AppendUint(c.buff[:0], uint64(len(b)), 16)
	buff = append(buff, crlf...)
	buff = append(buff, b...)
	buff = append(buff, crlf...)
	c.buff = buff

	if _, err = c.w.Write(buff); err != nil {
		return 0, err
	}

	return len(b), nil
}

// Close writes the zero-length chunk followed by the trailers, if any.
func (c *ChunkedWriter) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	buff := append(c.buff[:0], '0')
	buff = append(buff, crlf...)
	buff = http1.AppendFields(buff, c.trailers)
	buff = append(buff, crlf...)
	c.buff = buff

	_, err := c.w.Write(buff)
	return err
}
