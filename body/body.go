// Package body implements the body framing strategies of HTTP/1.x messages: fixed
// length, chunked, until-close and none. Decoders are incremental and resumable,
// encoders write the framed body into an io.Writer.
package body

import (
	"io"

	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
)

// Decoder consumes body bytes in wire order.
type Decoder interface {
	// Parse feeds the data. done=true means the body is complete and extra holds the
	// bytes following it. done=false with nil error means more data is required.
	Parse(data []byte) (done bool, extra []byte, err error)
	// EOF signals that the stream ended. A nil error means the body is complete.
	EOF() error
	// Bytes returns the decoded body. The returned slice is never reused by the decoder.
	Bytes() []byte
	// Trailers returns the trailer fields. Only chunked bodies may carry any.
	Trailers() *headers.Headers
	// Reset prepares the decoder for the next body.
	Reset()
}

// Encoder produces the body bytes of a message.
type Encoder interface {
	Framing() http.Framing
	// Length returns the exact body length, or -1 if it isn't known in advance.
	Length() int64
	WriteTo(w io.Writer) (int64, error)
}
