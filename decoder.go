// Package h1codec parses and serializes HTTP/1.x messages. Decoders are incremental: the
// input may be split at arbitrary positions, and the result is the same as if it arrived
// at once. No I/O happens here; bytes are supplied and consumed by the caller.
package h1codec

import (
	"github.com/indigo-web/h1codec/body"
	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/protocol/http1"
	pkgerrors "github.com/pkg/errors"
)

type decoderState uint8

const (
	eHead decoderState = iota + 1
	eBody
	eFailed
)

// decoder drives the head decoder, resolves the framing and drives the chosen body
// decoder. It's shared by request and response decoders.
type decoder struct {
	isRequest  bool
	state      decoderState
	err        error
	noBody     bool
	head       *http1.HeadDecoder
	body       body.Decoder
	fixed      *body.FixedDecoder
	chunked    *body.ChunkedDecoder
	untilClose *body.UntilCloseDecoder

	line     http1.StartLine
	headers  *headers.Headers
	payload  []byte
	trailers *headers.Headers
}

func newDecoder(cfg *config.Config, isRequest bool) decoder {
	kind := http1.ResponseHead
	if isRequest {
		kind = http1.RequestHead
	}

	d := decoder{
		isRequest: isRequest,
		state:     eHead,
		head:      http1.NewHeadDecoder(kind, cfg),
		fixed:     body.NewFixedDecoder(cfg),
		chunked:   body.NewChunkedDecoder(cfg),
	}

	if !isRequest {
		d.untilClose = body.NewUntilCloseDecoder(cfg)
	}

	return d
}

func (d *decoder) parse(data []byte) (done bool, extra []byte, err error) {
	switch d.state {
	case eHead:
		done, extra, err = d.head.Parse(data)
		if err != nil {
			return false, nil, d.fail(err)
		}

		if !done {
			return false, nil, nil
		}

		if err = d.selectBody(); err != nil {
			return false, nil, d.fail(err)
		}

		d.state = eBody
		data = extra
		fallthrough
	case eBody:
		done, extra, err = d.body.Parse(data)
		if err != nil {
			return false, nil, d.fail(err)
		}

		if !done {
			return false, nil, nil
		}

		d.complete()
		return true, extra, nil
	case eFailed:
		return false, nil, d.err
	default:
		panic("unreachable code")
	}
}

func (d *decoder) selectBody() error {
	d.line = d.head.StartLine()
	hdrs := d.head.Headers()

	framing, length, err := http1.Resolve(hdrs, d.isRequest)
	if err != nil {
		return err
	}

	if d.noBody || (!d.isRequest && d.line.Code.BodyForbidden()) {
		framing = http.None
	}

	switch framing {
	case http.None:
		d.body = body.NoneDecoder{}
	case http.Fixed:
		d.fixed.Expect(length)
		d.body = d.fixed
	case http.Chunked:
		d.body = d.chunked
	case http.UntilClose:
		d.body = d.untilClose
	}

	return nil
}

func (d *decoder) eof() (done bool, err error) {
	switch d.state {
	case eHead:
		if d.head.Started() {
			return false, d.fail(pkgerrors.Wrap(errors.ErrUnexpectedEOF, "incomplete message head"))
		}

		return false, nil
	case eBody:
		if err = d.body.EOF(); err != nil {
			return false, d.fail(err)
		}

		d.complete()
		return true, nil
	case eFailed:
		return false, d.err
	default:
		panic("unreachable code")
	}
}

// complete collects the message parts and prepares the decoder for the next message.
func (d *decoder) complete() {
	d.headers = d.head.Headers()
	d.payload = d.body.Bytes()
	d.trailers = d.body.Trailers()
	if !d.line.Code.Informational() {
		d.noBody = false
	}

	d.state = eHead
	d.head.Reset()
	d.body.Reset()
}

func (d *decoder) fail(err error) error {
	d.state = eFailed
	d.err = err
	return err
}

func (d *decoder) reset() {
	d.state = eHead
	d.err = nil
	d.noBody = false
	d.head.Reset()
	d.fixed.Reset()
	d.chunked.Reset()
	if d.untilClose != nil {
		d.untilClose.Reset()
	}
}

// RequestDecoder decodes a stream of requests.
type RequestDecoder struct {
	decoder
	request *http.Request
}

func NewRequestDecoder(cfg *config.Config) *RequestDecoder {
	return &RequestDecoder{decoder: newDecoder(cfg, true)}
}

// Parse feeds the data into the decoder. It returns done=true once a whole request is
// decoded, which is then available via Request. In this case extra holds the bytes that
// follow the request, and they must be fed again in order to decode the next one. done=false
// with nil error means more data is required.
//
// Any error is terminal: all the subsequent calls return it until Reset is called.
func (r *RequestDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	done, extra, err = r.parse(data)
	if done {
		r.request = r.build()
	}

	return done, extra, err
}

// EOF signals that the stream ended. As a request body is never delimited by the end of
// the stream, EOF never completes a request. A nil error means the stream ended cleanly
// between requests, otherwise errors.ErrUnexpectedEOF is returned.
func (r *RequestDecoder) EOF() (done bool, err error) {
	done, err = r.eof()
	if done {
		r.request = r.build()
	}

	return done, err
}

// Request returns the last decoded request. The request is never modified or reused by
// the decoder afterward.
func (r *RequestDecoder) Request() *http.Request {
	return r.request
}

// Reset discards any partially decoded request and the terminal error, if any.
func (r *RequestDecoder) Reset() {
	r.reset()
}

func (r *RequestDecoder) build() *http.Request {
	return &http.Request{
		Method:   r.line.Method,
		Target:   r.line.Target,
		Protocol: r.line.Protocol,
		Headers:  r.headers,
		Body:     r.payload,
		Trailers: r.trailers,
	}
}

// ResponseDecoder decodes a stream of responses.
type ResponseDecoder struct {
	decoder
	response *http.Response
}

func NewResponseDecoder(cfg *config.Config) *ResponseDecoder {
	return &ResponseDecoder{decoder: newDecoder(cfg, false)}
}

// ExpectNoBody tells the decoder that the next response carries no body regardless of
// its headers. It's the case for responses to HEAD requests. Responses with 1xx, 204 and
// 304 codes are recognized automatically.
func (r *ResponseDecoder) ExpectNoBody() {
	r.noBody = true
}

// Parse has the same semantics as RequestDecoder.Parse. Responses without framing fields
// are never complete until EOF is called.
func (r *ResponseDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	done, extra, err = r.parse(data)
	if done {
		r.response = r.build()
	}

	return done, extra, err
}

// EOF signals that the stream ended. done=true means a response whose body is read until
// the stream ends was completed.
func (r *ResponseDecoder) EOF() (done bool, err error) {
	done, err = r.eof()
	if done {
		r.response = r.build()
	}

	return done, err
}

// Response returns the last decoded response.
func (r *ResponseDecoder) Response() *http.Response {
	return r.response
}

// Reset discards any partially decoded response and the terminal error, if any.
func (r *ResponseDecoder) Reset() {
	r.reset()
}

func (r *ResponseDecoder) build() *http.Response {
	return &http.Response{
		Protocol: r.line.Protocol,
		Code:     r.line.Code,
		Reason:   r.line.Reason,
		Headers:  r.headers,
		Body:     r.payload,
		Trailers: r.trailers,
	}
}
