package http

import (
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/http/proto"
	"github.com/indigo-web/h1codec/http/status"
)

// Response represents an HTTP/1.x response message.
type Response struct {
	// Protocol is either proto.HTTP10 or proto.HTTP11.
	Protocol proto.Protocol
	// Code is the status code, in range [100, 999].
	Code status.Code
	// Reason is the reason phrase. It may be empty.
	Reason string
	// Headers holds the fields in their wire order and spelling, duplicates included.
	Headers *headers.Headers
	// Body is the payload with any transfer coding removed.
	Body []byte
	// Trailers holds the trailer fields of a chunked body. It's empty otherwise.
	Trailers *headers.Headers
}

// NewResponse validates the status-line fields and returns a response with no headers
// and no body.
func NewResponse(protocol proto.Protocol, code status.Code, reason string) (*Response, error) {
	if err := proto.Validate(protocol); err != nil {
		return nil, err
	}

	if err := status.Validate(code); err != nil {
		return nil, err
	}

	if err := status.ValidateReason(reason); err != nil {
		return nil, err
	}

	return &Response{
		Protocol: protocol,
		Code:     code,
		Reason:   reason,
		Headers:  headers.New(),
		Trailers: headers.New(),
	}, nil
}

// NewStatusResponse returns a response with the reason phrase registered for the code.
func NewStatusResponse(protocol proto.Protocol, code status.Code) (*Response, error) {
	return NewResponse(protocol, code, status.Text(code))
}

// Header appends a header field. Fields are validated when the message is encoded.
func (r *Response) Header(name, value string) *Response {
	r.Headers.Add(name, value)
	return r
}

// WithBody sets the body.
func (r *Response) WithBody(body []byte) *Response {
	r.Body = body
	return r
}

// Validate checks every textual field of the response, so that it cannot inject
// additional lines into the message.
func (r *Response) Validate() error {
	if err := proto.Validate(r.Protocol); err != nil {
		return err
	}

	if err := status.Validate(r.Code); err != nil {
		return err
	}

	if err := status.ValidateReason(r.Reason); err != nil {
		return err
	}

	return r.Headers.Validate()
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	c := *r
	c.Headers = r.Headers.Clone()
	c.Trailers = r.Trailers.Clone()
	if r.Body != nil {
		c.Body = append(make([]byte, 0, len(r.Body)), r.Body...)
	}

	return &c
}
