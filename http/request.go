package http

import (
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/http/method"
	"github.com/indigo-web/h1codec/http/proto"
	"github.com/indigo-web/h1codec/http/target"
)

// Request represents an HTTP/1.x request message.
type Request struct {
	// Method keeps the original case, as methods are case-sensitive.
	Method method.Method
	// Target is the request-target exactly as it appears on the wire.
	Target target.Target
	// Protocol is either proto.HTTP10 or proto.HTTP11.
	Protocol proto.Protocol
	// Headers holds the fields in their wire order and spelling, duplicates included.
	Headers *headers.Headers
	// Body is the payload with any transfer coding removed.
	Body []byte
	// Trailers holds the trailer fields of a chunked body. It's empty otherwise.
	Trailers *headers.Headers
}

// NewRequest validates the request-line fields and returns a request with no headers
// and no body.
func NewRequest(m string, t string, protocol proto.Protocol) (*Request, error) {
	parsedMethod, err := method.Parse(m)
	if err != nil {
		return nil, err
	}

	parsedTarget, err := target.Parse(t)
	if err != nil {
		return nil, err
	}

	if err = proto.Validate(protocol); err != nil {
		return nil, err
	}

	return &Request{
		Method:   parsedMethod,
		Target:   parsedTarget,
		Protocol: protocol,
		Headers:  headers.New(),
		Trailers: headers.New(),
	}, nil
}

// Header appends a header field. Fields are validated when the message is encoded.
func (r *Request) Header(name, value string) *Request {
	r.Headers.Add(name, value)
	return r
}

// WithBody sets the body.
func (r *Request) WithBody(body []byte) *Request {
	r.Body = body
	return r
}

// Validate checks every textual field of the request, so that it cannot inject
// additional lines into the message.
func (r *Request) Validate() error {
	if _, err := method.Parse(r.Method.String()); err != nil {
		return err
	}

	if _, err := target.Parse(r.Target.String()); err != nil {
		return err
	}

	if err := proto.Validate(r.Protocol); err != nil {
		return err
	}

	return r.Headers.Validate()
}

// Clone returns a deep copy of the request.
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = r.Headers.Clone()
	c.Trailers = r.Trailers.Clone()
	if r.Body != nil {
		c.Body = append(make([]byte, 0, len(r.Body)), r.Body...)
	}

	return &c
}
