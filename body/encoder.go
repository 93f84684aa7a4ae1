package body

import (
	"bytes"
	"io"

	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
)

// DefaultChunkSize is the maximal size of a chunk produced by Chunked if no other is
// specified.
const DefaultChunkSize = 16 * 1024

var (
	_ Encoder = fixedEncoder{}
	_ Encoder = new(ChunkedEncoder)
	_ Encoder = untilCloseEncoder{}
	_ Encoder = noneEncoder{}
	_ Encoder = HeadEncoder{}
)

type fixedEncoder struct {
	body []byte
}

// Fixed returns an encoder writing the body verbatim. The message gets the Content-Length
// computed from the actual body length.
func Fixed(body []byte) Encoder {
	return fixedEncoder{body: body}
}

func (f fixedEncoder) Framing() http.Framing {
	return http.Fixed
}

func (f fixedEncoder) Length() int64 {
	return int64(len(f.body))
}

func (f fixedEncoder) WriteTo(w io.Writer) (int64, error) {
	if len(f.body) == 0 {
		return 0, nil
	}

	n, err := w.Write(f.body)
	return int64(n), err
}

// ChunkedEncoder reads a source of unknown length and writes it as a sequence of chunks.
type ChunkedEncoder struct {
	source    io.Reader
	chunkSize int
	trailers  *headers.Headers
}

// Chunked returns an encoder producing chunks of at most chunkSize bytes out of the
// source. Non-positive chunkSize falls back to DefaultChunkSize.
func Chunked(source io.Reader, chunkSize int) *ChunkedEncoder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ChunkedEncoder{
		source:    source,
		chunkSize: chunkSize,
	}
}

// ChunkedBytes is a shorthand for Chunked over an in-memory body.
func ChunkedBytes(body []byte, chunkSize int) *ChunkedEncoder {
	return Chunked(bytes.NewReader(body), chunkSize)
}

// WithTrailers sets the trailer fields written after the last chunk.
func (c *ChunkedEncoder) WithTrailers(trailers *headers.Headers) *ChunkedEncoder {
	c.trailers = trailers
	return c
}

func (c *ChunkedEncoder) Framing() http.Framing {
	return http.Chunked
}

func (c *ChunkedEncoder) Length() int64 {
	return -1
}

func (c *ChunkedEncoder) WriteTo(w io.Writer) (int64, error) {
	if err := c.trailers.Validate(); err != nil {
		return 0, err
	}

	counter := &countingWriter{w: w}
	cw := NewChunkedWriter(counter)
	cw.trailers = c.trailers

	buff := make([]byte, c.chunkSize)
	for {
		n, err := c.source.Read(buff)
		if n > 0 {
			if _, werr := cw.Write(buff[:n]); werr != nil {
				return counter.n, werr
			}
		}

		switch err {
		case nil:
		case io.EOF:
			return counter.n, cw.Close()
		default:
			return counter.n, err
		}
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

type untilCloseEncoder struct {
	body []byte
}

// UntilClose returns an encoder writing the body verbatim without any framing fields. The
// body ends when the stream is closed, so it's valid for responses only.
func UntilClose(body []byte) Encoder {
	return untilCloseEncoder{body: body}
}

func (u untilCloseEncoder) Framing() http.Framing {
	return http.UntilClose
}

func (u untilCloseEncoder) Length() int64 {
	return int64(len(u.body))
}

func (u untilCloseEncoder) WriteTo(w io.Writer) (int64, error) {
	if len(u.body) == 0 {
		return 0, nil
	}

	n, err := w.Write(u.body)
	return int64(n), err
}

type noneEncoder struct{}

// None returns an encoder of an absent body. Framing fields are removed from the message.
func None() Encoder {
	return noneEncoder{}
}

func (noneEncoder) Framing() http.Framing {
	return http.None
}

func (noneEncoder) Length() int64 {
	return 0
}

func (noneEncoder) WriteTo(io.Writer) (int64, error) {
	return 0, nil
}

// HeadEncoder keeps the framing of another encoder but writes no body bytes. It's used
// for responses to HEAD requests, which announce the length of the body they would carry.
type HeadEncoder struct {
	inner Encoder
}

// Head wraps the inner encoder. A nil inner is the same as None().
func Head(inner Encoder) HeadEncoder {
	if inner == nil {
		inner = None()
	}

	return HeadEncoder{inner: inner}
}

func (h HeadEncoder) Framing() http.Framing {
	return h.inner.Framing()
}

func (h HeadEncoder) Length() int64 {
	return h.inner.Length()
}

func (HeadEncoder) WriteTo(io.Writer) (int64, error) {
	return 0, nil
}
